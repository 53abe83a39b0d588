package trending

import (
	"context"

	"clipshare-platform/pkg/db/option"
	"clipshare-platform/pkg/leaderboard"
	"clipshare-platform/pkg/repository"
	"clipshare-platform/services/clip"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLimit matches the trending shelf size in the app.
const DefaultLimit = 10

// viewBoard is the slice of the hot-view board this service reads.
type viewBoard interface {
	Top(ctx context.Context, n int64) ([]string, error)
}

type Service struct {
	clips repository.Repository[clip.Clip]
	board viewBoard
}

type ServiceParams struct {
	fx.In
	DB    *gorm.DB
	Board *leaderboard.Board `optional:"true"`
}

func NewService(p ServiceParams) *Service {
	s := &Service{
		clips: repository.ProvideStore[clip.Clip](p.DB),
	}
	if p.Board != nil {
		s.board = p.Board
	}
	return s
}

// ListTrending returns the most viewed public clips. The redis hot-view board
// is consulted first; a board failure, or a board answer that cannot fill the
// shelf (stale or non-public ids), falls back to the persisted view counts,
// which stay authoritative.
func (s *Service) ListTrending(ctx context.Context, limit int) ([]*clip.Clip, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if s.board != nil {
		if clips, err := s.fromBoard(ctx, limit); err != nil {
			s.log(ctx).Warn("trending board unavailable, falling back to view counts", zap.Error(err))
		} else if len(clips) >= limit {
			return clips, nil
		}
	}

	return s.fromViewCounts(ctx, limit)
}

func (s *Service) fromBoard(ctx context.Context, limit int) ([]*clip.Clip, error) {
	ids, err := s.board.Top(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.clips.Find(ctx, &clip.Clip{Visibility: clip.VisibilityPublic}, option.ApplyOperator(option.Condition{
		Field:    "id",
		Operator: option.IN,
		Value:    ids,
	}))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*clip.Clip, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	out := make([]*clip.Clip, 0, len(ids))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row)
		}
	}

	return out, nil
}

func (s *Service) fromViewCounts(ctx context.Context, limit int) ([]*clip.Clip, error) {
	clips, err := s.clips.Find(ctx, &clip.Clip{Visibility: clip.VisibilityPublic},
		option.WithSortBy(option.QuerySortBy{
			SortBy:  "view_count",
			OrderBy: "desc",
			Allow:   map[string]bool{"view_count": true},
		}),
		option.WithLimit(limit),
	)
	if err != nil {
		s.log(ctx).Error("failed to list trending clips", zap.Error(err))
		return nil, err
	}

	return clips, nil
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	return zap.L().With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("span_id", span.SpanContext().SpanID().String()),
	)
}
