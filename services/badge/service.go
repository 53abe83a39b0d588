package badge

import (
	"context"
	"strings"
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

	repo repository.Repository[Badge]
}

type ServiceParams struct {
	fx.In
	DB   *gorm.DB
	Node *snowflake.Node
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:   p.DB,
		node: p.Node,
		repo: repository.ProvideStore[Badge](p.DB),
	}
}

// ApplyBadge issues a badge of the given type to the user. There is no
// uniqueness constraint: applying twice for the same type issues two badges.
func (s *Service) ApplyBadge(ctx context.Context, userID, badgeType string) (*Badge, error) {
	if userID == "" {
		return nil, errutil.BadRequest("user id required", nil)
	}

	badgeType = strings.TrimSpace(badgeType)
	if badgeType == "" {
		return nil, errutil.ValidationFailed("badge type required", nil,
			errutil.WithDetails(errutil.Detail{Field: "badge_type", Message: "must not be empty"}))
	}

	b := &Badge{
		ID:        s.node.Generate().String(),
		UserID:    userID,
		BadgeType: badgeType,
		IssuedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.log(ctx).Error("failed to issue badge",
			zap.String("user_id", userID),
			zap.String("badge_type", badgeType),
			zap.Error(err),
		)
		return nil, err
	}

	return b, nil
}

// GetUserBadges returns the user's badges in issuance order. An empty slice
// is not an error.
func (s *Service) GetUserBadges(ctx context.Context, userID string) ([]*Badge, error) {
	if userID == "" {
		return nil, errutil.BadRequest("user id required", nil)
	}

	badges, err := s.repo.Find(ctx, &Badge{UserID: userID}, option.WithSortBy(option.QuerySortBy{
		SortBy:  "issued_at",
		OrderBy: "asc",
		Allow:   map[string]bool{"issued_at": true},
	}))
	if err != nil {
		s.log(ctx).Error("failed to list badges", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return badges, nil
}

// DeleteBadge revokes a badge by hard-deleting the record.
func (s *Service) DeleteBadge(ctx context.Context, badgeID string) error {
	if badgeID == "" {
		return errutil.BadRequest("badge id required", nil)
	}

	existing, err := s.repo.FindOne(ctx, &Badge{ID: badgeID})
	if err != nil {
		s.log(ctx).Error("failed to query badge", zap.String("badge_id", badgeID), zap.Error(err))
		return err
	}

	if existing == nil {
		return errutil.NotFound("badge not found", nil)
	}

	if err := s.repo.Delete(ctx, badgeID); err != nil {
		s.log(ctx).Error("failed to delete badge", zap.String("badge_id", badgeID), zap.Error(err))
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
