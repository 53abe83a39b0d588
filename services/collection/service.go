package collection

import (
	"context"
	"time"

	"clipshare-platform/pkg/db/option"
	"clipshare-platform/pkg/errutil"
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

type Service struct {
	db   *gorm.DB
	node *snowflake.Node

	repo     repository.Repository[Collection]
	items    repository.Repository[CollectionClip]
	users    *user.Service
	earnings *earnings.Service
}

type ServiceParams struct {
	fx.In
	DB       *gorm.DB
	Node     *snowflake.Node
	Users    *user.Service
	Earnings *earnings.Service
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:       p.DB,
		node:     p.Node,
		repo:     repository.ProvideStore[Collection](p.DB),
		items:    repository.ProvideStore[CollectionClip](p.DB),
		users:    p.Users,
		earnings: p.Earnings,
	}
}

// ListCollections returns all collections newest first, with verified-owner
// collections boosted to the front of the list.
func (s *Service) ListCollections(ctx context.Context) ([]*Collection, error) {
	colls, err := s.repo.Find(ctx, &Collection{}, option.WithSortBy(option.QuerySortBy{
		SortBy:  "created_at",
		OrderBy: "desc",
		Allow:   map[string]bool{"created_at": true},
	}))
	if err != nil {
		s.log(ctx).Error("failed to list collections", zap.Error(err))
		return nil, err
	}

	seen := make(map[string]struct{}, len(colls))
	ownerIDs := make([]string, 0, len(colls))
	for _, coll := range colls {
		if _, ok := seen[coll.OwnerID]; ok {
			continue
		}
		seen[coll.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, coll.OwnerID)
	}

	verified, err := s.users.VerifiedOwners(ctx, ownerIDs)
	if err != nil {
		s.log(ctx).Warn("owner lookup failed, serving list without boost", zap.Error(err))
		verified = map[string]bool{}
	}

	return ranking.SortByVerifiedOwner(colls, func(c *Collection) string { return c.OwnerID }, verified), nil
}

func (s *Service) GetCollection(ctx context.Context, collectionID string) (*Collection, error) {
	if collectionID == "" {
		return nil, errutil.BadRequest("collection id required", nil)
	}

	coll, err := s.repo.FindOne(ctx, &Collection{ID: collectionID})
	if err != nil {
		s.log(ctx).Error("failed to query collection", zap.String("collection_id", collectionID), zap.Error(err))
		return nil, err
	}

	if coll == nil {
		return nil, errutil.NotFound("collection not found", nil)
	}

	return coll, nil
}

type CreateCollectionParams struct {
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Service) CreateCollection(ctx context.Context, p CreateCollectionParams) (*Collection, error) {
	if p.OwnerID == "" {
		return nil, errutil.ValidationFailed("owner id required", nil)
	}
	if p.Title == "" {
		return nil, errutil.ValidationFailed("title required", nil)
	}

	now := time.Now()
	coll := &Collection{
		ID:          s.node.Generate().String(),
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, coll); err != nil {
		s.log(ctx).Error("failed to create collection", zap.Error(err))
		return nil, err
	}

	return coll, nil
}

type UpdateCollectionParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Service) UpdateCollection(ctx context.Context, collectionID string, p UpdateCollectionParams) (*Collection, error) {
	if _, err := s.GetCollection(ctx, collectionID); err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if p.Title != "" {
		updates["title"] = p.Title
	}
	if p.Description != "" {
		updates["description"] = p.Description
	}

	if err := s.repo.Update(ctx, collectionID, updates); err != nil {
		s.log(ctx).Error("failed to update collection", zap.String("collection_id", collectionID), zap.Error(err))
		return nil, err
	}

	return s.GetCollection(ctx, collectionID)
}

func (s *Service) DeleteCollection(ctx context.Context, collectionID string) error {
	if _, err := s.GetCollection(ctx, collectionID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", collectionID).Delete(&CollectionClip{}).Error; err != nil {
			return err
		}
		return s.repo.WithTrx(tx).Delete(ctx, collectionID)
	})
}

// AddClip links a clip to the end of a collection.
func (s *Service) AddClip(ctx context.Context, collectionID, clipID string) (*CollectionClip, error) {
	if clipID == "" {
		return nil, errutil.BadRequest("clip id required", nil)
	}

	if _, err := s.GetCollection(ctx, collectionID); err != nil {
		return nil, err
	}

	count, err := s.items.Count(ctx, &CollectionClip{CollectionID: collectionID})
	if err != nil {
		return nil, err
	}

	item := &CollectionClip{
		ID:           s.node.Generate().String(),
		CollectionID: collectionID,
		ClipID:       clipID,
		Position:     int(count),
		CreatedAt:    time.Now(),
	}

	if err := s.items.Create(ctx, item); err != nil {
		s.log(ctx).Error("failed to add clip to collection", zap.String("collection_id", collectionID), zap.Error(err))
		return nil, err
	}

	return item, nil
}

// ListClips returns the clip links of a collection in manual order.
func (s *Service) ListClips(ctx context.Context, collectionID string) ([]*CollectionClip, error) {
	if _, err := s.GetCollection(ctx, collectionID); err != nil {
		return nil, err
	}

	return s.items.Find(ctx, &CollectionClip{CollectionID: collectionID}, option.WithSortBy(option.QuerySortBy{
		SortBy:  "position",
		OrderBy: "asc",
		Allow:   map[string]bool{"position": true},
	}))
}

// RecordCollectionView credits the collection owner for one rendering of the
// detail screen.
func (s *Service) RecordCollectionView(ctx context.Context, collectionID string) (*Collection, error) {
	coll, err := s.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.earnings.RecordView(ctx, earnings.RecordViewParams{
		OwnerID:    coll.OwnerID,
		SourceType: earnings.SourceCollectionView,
		SourceID:   coll.ID,
	}); err != nil {
		return nil, err
	}

	return coll, nil
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	return zap.L().With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("span_id", span.SpanContext().SpanID().String()),
	)
}
