package user

import (
	"context"
	"time"

	"clipshare-platform/pkg/db/option"
	"clipshare-platform/pkg/errutil"
	"clipshare-platform/pkg/repository"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	node *snowflake.Node

	repo    repository.Repository[User]
	follows repository.Repository[Follow]
}

type ServiceParams struct {
	fx.In
	DB   *gorm.DB
	Node *snowflake.Node
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:      p.DB,
		node:    p.Node,
		repo:    repository.ProvideStore[User](p.DB),
		follows: repository.ProvideStore[Follow](p.DB),
	}
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, errutil.BadRequest("user id required", nil)
	}

	u, err := s.repo.FindOne(ctx, &User{ID: userID})
	if err != nil {
		s.log(ctx).Error("failed to query user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if u == nil {
		return nil, errutil.NotFound("user not found", nil)
	}

	return u, nil
}

type UpdateProfileParams struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*User, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if params.Username != "" {
		updates["username"] = params.Username
	}
	if params.DisplayName != "" {
		updates["display_name"] = params.DisplayName
	}
	if params.Avatar != "" {
		updates["avatar"] = params.Avatar
	}
	if params.Bio != "" {
		updates["bio"] = params.Bio
	}

	if err := s.repo.Update(ctx, userID, updates); err != nil {
		s.log(ctx).Error("failed to update user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return s.GetUser(ctx, userID)
}

// ListOfficials returns every verified account, newest first. Backs the
// officials tab.
func (s *Service) ListOfficials(ctx context.Context) ([]*User, error) {
	officials, err := s.repo.Find(ctx, &User{IsVerified: true}, option.WithSortBy(option.QuerySortBy{
		SortBy:  "created_at",
		OrderBy: "desc",
		Allow:   map[string]bool{"created_at": true},
	}))
	if err != nil {
		s.log(ctx).Error("failed to list official users", zap.Error(err))
		return nil, err
	}

	return officials, nil
}

// VerifiedOwners batch-fetches the given owner ids and returns a lookup of
// their verification flags. Ids that resolve to no user are simply absent
// from the map, which downstream ranking treats as not verified.
func (s *Service) VerifiedOwners(ctx context.Context, ownerIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}

	owners, err := s.repo.Find(ctx, &User{}, option.ApplyOperator(option.Condition{
		Field:    "id",
		Operator: option.IN,
		Value:    ownerIDs,
	}))
	if err != nil {
		s.log(ctx).Error("failed to batch fetch owners", zap.Error(err))
		return nil, err
	}

	for _, o := range owners {
		out[o.ID] = o.IsVerified
	}

	return out, nil
}

// FollowUser creates the follow link and bumps both counters in one
// transaction. The counter updates are atomic SQL increments so concurrent
// follows of the same account never lose a count.
func (s *Service) FollowUser(ctx context.Context, followerID, followingID string) (*Follow, error) {
	if followerID == "" || followingID == "" {
		return nil, errutil.BadRequest("follower and following ids required", nil)
	}
	if followerID == followingID {
		return nil, errutil.BadRequest("cannot follow yourself", nil)
	}

	if _, err := s.GetUser(ctx, followerID); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, followingID); err != nil {
		return nil, err
	}

	existing, err := s.follows.FindOne(ctx, &Follow{FollowerID: followerID, FollowingID: followingID})
	if err != nil {
		s.log(ctx).Error("failed to query follow link", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, errutil.Conflict("already following", nil)
	}

	link := &Follow{
		ID:          s.node.Generate().String(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.follows.WithTrx(tx).Create(ctx, link); err != nil {
			return err
		}
		if err := s.repo.WithTrx(tx).Update(ctx, followerID, map[string]any{
			"following": gorm.Expr("following + ?", 1),
		}); err != nil {
			return err
		}
		return s.repo.WithTrx(tx).Update(ctx, followingID, map[string]any{
			"followers": gorm.Expr("followers + ?", 1),
		})
	}); err != nil {
		s.log(ctx).Error("failed to follow user",
			zap.String("follower_id", followerID),
			zap.String("following_id", followingID),
			zap.Error(err),
		)
		return nil, err
	}

	return link, nil
}

// UnfollowUser removes the follow link and decrements both counters.
func (s *Service) UnfollowUser(ctx context.Context, followerID, followingID string) error {
	if followerID == "" || followingID == "" {
		return errutil.BadRequest("follower and following ids required", nil)
	}

	link, err := s.follows.FindOne(ctx, &Follow{FollowerID: followerID, FollowingID: followingID})
	if err != nil {
		s.log(ctx).Error("failed to query follow link", zap.Error(err))
		return err
	}
	if link == nil {
		return errutil.NotFound("not following", nil)
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.follows.WithTrx(tx).Delete(ctx, link.ID); err != nil {
			return err
		}
		if err := s.repo.WithTrx(tx).Update(ctx, followerID, map[string]any{
			"following": gorm.Expr("following - ?", 1),
		}); err != nil {
			return err
		}
		return s.repo.WithTrx(tx).Update(ctx, followingID, map[string]any{
			"followers": gorm.Expr("followers - ?", 1),
		})
	}); err != nil {
		s.log(ctx).Error("failed to unfollow user",
			zap.String("follower_id", followerID),
			zap.String("following_id", followingID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	return zap.L().With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("span_id", span.SpanContext().SpanID().String()),
	)
}
