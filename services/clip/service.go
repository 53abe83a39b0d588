package clip

import (
	"context"
	"time"

	"clipshare-platform/pkg/db/option"
	"clipshare-platform/pkg/errutil"
	"clipshare-platform/pkg/leaderboard"
	"clipshare-platform/pkg/repository"
	"clipshare-platform/services/earnings"
	"clipshare-platform/services/ranking"
	"clipshare-platform/services/user"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var recencySort = option.WithSortBy(option.QuerySortBy{
	SortBy:  "created_at",
	OrderBy: "desc",
	Allow:   map[string]bool{"created_at": true},
})

type Service struct {
	db   *gorm.DB
	node *snowflake.Node

	repo     repository.Repository[Clip]
	owners   repository.Repository[user.User]
	users    *user.Service
	earnings *earnings.Service
	board    *leaderboard.Board
}

type ServiceParams struct {
	fx.In
	DB       *gorm.DB
	Node     *snowflake.Node
	Users    *user.Service
	Earnings *earnings.Service
	Board    *leaderboard.Board `optional:"true"`
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:       p.DB,
		node:     p.Node,
		repo:     repository.ProvideStore[Clip](p.DB),
		owners:   repository.ProvideStore[user.User](p.DB),
		users:    p.Users,
		earnings: p.Earnings,
		board:    p.Board,
	}
}

// ListClips returns all public clips, newest first.
func (s *Service) ListClips(ctx context.Context) ([]*Clip, error) {
	clips, err := s.repo.Find(ctx, &Clip{Visibility: VisibilityPublic}, recencySort)
	if err != nil {
		s.log(ctx).Error("failed to list clips", zap.Error(err))
		return nil, err
	}

	return clips, nil
}

// ListFeed returns the home feed: public clips by recency with verified-owner
// clips boosted to the front. An owner batch fetch that fails degrades to no
// boost rather than failing the feed.
func (s *Service) ListFeed(ctx context.Context) ([]*Clip, error) {
	clips, err := s.ListClips(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(clips))
	ownerIDs := make([]string, 0, len(clips))
	for _, c := range clips {
		if _, ok := seen[c.OwnerID]; ok {
			continue
		}
		seen[c.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, c.OwnerID)
	}

	verified, err := s.users.VerifiedOwners(ctx, ownerIDs)
	if err != nil {
		s.log(ctx).Warn("owner lookup failed, serving feed without boost", zap.Error(err))
		verified = map[string]bool{}
	}

	return ranking.SortByVerifiedOwner(clips, func(c *Clip) string { return c.OwnerID }, verified), nil
}

func (s *Service) GetClip(ctx context.Context, clipID string) (*Clip, error) {
	if clipID == "" {
		return nil, errutil.BadRequest("clip id required", nil)
	}

	c, err := s.repo.FindOne(ctx, &Clip{ID: clipID})
	if err != nil {
		s.log(ctx).Error("failed to query clip", zap.String("clip_id", clipID), zap.Error(err))
		return nil, err
	}

	if c == nil {
		return nil, errutil.NotFound("clip not found", nil)
	}

	return c, nil
}

type CreateClipParams struct {
	OwnerID      string     `json:"owner_id"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url"`
	Duration     int64      `json:"duration"`
	Source       string     `json:"source"`
	GameTag      string     `json:"game_tag"`
	Visibility   Visibility `json:"visibility"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func (s *Service) CreateClip(ctx context.Context, p CreateClipParams) (*Clip, error) {
	if p.OwnerID == "" {
		return nil, errutil.ValidationFailed("owner id required", nil)
	}
	if p.Title == "" {
		return nil, errutil.ValidationFailed("title required", nil)
	}
	if p.URL == "" {
		return nil, errutil.ValidationFailed("url required", nil)
	}

	if p.Visibility == "" {
		p.Visibility = VisibilityPublic
	}
	if !p.Visibility.Valid() {
		return nil, errutil.ValidationFailed("invalid visibility", nil,
			errutil.WithDetails(errutil.Detail{Field: "visibility", Message: string(p.Visibility)}))
	}

	now := time.Now()
	c := &Clip{
		ID:           s.node.Generate().String(),
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		URL:          p.URL,
		ThumbnailURL: p.ThumbnailURL,
		Duration:     p.Duration,
		Source:       p.Source,
		GameTag:      p.GameTag,
		Visibility:   p.Visibility,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    p.ExpiresAt,
	}

	// The owner's clip counter rides in the same transaction. The update is
	// a no-op when the owner row does not exist yet.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTrx(tx).Create(ctx, c); err != nil {
			return err
		}
		return s.owners.WithTrx(tx).Update(ctx, c.OwnerID, map[string]any{
			"clips": gorm.Expr("clips + ?", 1),
		})
	}); err != nil {
		s.log(ctx).Error("failed to create clip", zap.Error(err))
		return nil, err
	}

	return c, nil
}

type UpdateClipParams struct {
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url"`
	GameTag      string     `json:"game_tag"`
	Visibility   Visibility `json:"visibility"`
	IsArchived   *bool      `json:"is_archived"`
	IsPinned     *bool      `json:"is_pinned"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func (s *Service) UpdateClip(ctx context.Context, clipID string, p UpdateClipParams) (*Clip, error) {
	if _, err := s.GetClip(ctx, clipID); err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if p.Title != "" {
		updates["title"] = p.Title
	}
	if p.URL != "" {
		updates["url"] = p.URL
	}
	if p.ThumbnailURL != "" {
		updates["thumbnail_url"] = p.ThumbnailURL
	}
	if p.GameTag != "" {
		updates["game_tag"] = p.GameTag
	}
	if p.Visibility != "" {
		if !p.Visibility.Valid() {
			return nil, errutil.ValidationFailed("invalid visibility", nil)
		}
		updates["visibility"] = p.Visibility
	}
	if p.IsArchived != nil {
		updates["is_archived"] = *p.IsArchived
	}
	if p.IsPinned != nil {
		updates["is_pinned"] = *p.IsPinned
	}
	if p.ExpiresAt != nil {
		updates["expires_at"] = *p.ExpiresAt
	}

	if err := s.repo.Update(ctx, clipID, updates); err != nil {
		s.log(ctx).Error("failed to update clip", zap.String("clip_id", clipID), zap.Error(err))
		return nil, err
	}

	return s.GetClip(ctx, clipID)
}

func (s *Service) DeleteClip(ctx context.Context, clipID string) error {
	c, err := s.GetClip(ctx, clipID)
	if err != nil {
		return err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTrx(tx).Delete(ctx, clipID); err != nil {
			return err
		}
		return s.owners.WithTrx(tx).Update(ctx, c.OwnerID, map[string]any{
			"clips": gorm.Expr("clips - ?", 1),
		})
	}); err != nil {
		s.log(ctx).Error("failed to delete clip", zap.String("clip_id", clipID), zap.Error(err))
		return err
	}

	return nil
}

// RecordClipView registers one rendering of a clip: the owner is credited
// through the earnings ledger, the view counter is bumped with an atomic SQL
// increment, and the hot-view board is nudged best effort.
func (s *Service) RecordClipView(ctx context.Context, clipID string) (*Clip, error) {
	c, err := s.GetClip(ctx, clipID)
	if err != nil {
		return nil, err
	}

	// The credit goes first: a failed accrual must not leave a bumped view
	// counter behind.
	if _, err := s.earnings.RecordView(ctx, earnings.RecordViewParams{
		OwnerID:    c.OwnerID,
		SourceType: earnings.SourceClipView,
		SourceID:   c.ID,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c.ID, map[string]any{
		"view_count": gorm.Expr("view_count + ?", 1),
		"updated_at": time.Now(),
	}); err != nil {
		// The credit is already committed; failing the call now would invite
		// a retry that double-credits, so the drift is logged instead.
		s.log(ctx).Warn("failed to increment view count", zap.String("clip_id", c.ID), zap.Error(err))
	}

	if s.board != nil {
		if err := s.board.Bump(ctx, c.ID); err != nil {
			s.log(ctx).Warn("failed to bump trending board", zap.String("clip_id", c.ID), zap.Error(err))
		}
	}

	return s.GetClip(ctx, clipID)
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	return zap.L().With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("span_id", span.SpanContext().SpanID().String()),
	)
}
