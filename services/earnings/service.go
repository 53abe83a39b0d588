package earnings

import (
	"context"
	"encoding/json"
	"time"

	"clipshare-platform/pkg/db/option"
	"clipshare-platform/pkg/errutil"
	"clipshare-platform/pkg/repository"
	"clipshare-platform/services/user"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	node *snowflake.Node

	ledger repository.Repository[Earning]
	users  repository.Repository[user.User]
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

		ledger: repository.ProvideStore[Earning](p.DB),
		users:  repository.ProvideStore[user.User](p.DB),
	}
}

type RecordViewParams struct {
	OwnerID    string            `json:"owner_id"`
	SourceType string            `json:"source_type"`
	SourceID   string            `json:"source_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// RecordView credits the content owner for one view. Every call grants
// credit; de-duplicating repeated views is the caller's concern. An owner id
// that resolves to no user still earns at the unverified rate so momentarily
// inconsistent profile data never drops legitimate credit.
func (s *Service) RecordView(ctx context.Context, p RecordViewParams) (*Earning, error) {
	zapLog := s.log(ctx).With(
		zap.String("owner_id", p.OwnerID),
		zap.String("source_type", p.SourceType),
		zap.String("source_id", p.SourceID),
	)

	if p.OwnerID == "" {
		return nil, errutil.BadRequest("owner id required", nil)
	}
	if p.SourceID == "" {
		return nil, errutil.BadRequest("source id required", nil)
	}

	owner, err := s.users.FindOne(ctx, &user.User{ID: p.OwnerID})
	if err != nil {
		zapLog.Error("failed to query owner", zap.Error(err))
		return nil, err
	}

	verified := owner != nil && owner.IsVerified
	if owner == nil {
		zapLog.Warn("owner not found, crediting at base rate")
	}

	amount, ok := AmountFor(p.SourceType, verified)
	if !ok {
		return nil, errutil.BadRequest("unrecognized source type", nil,
			errutil.WithDetails(errutil.Detail{Field: "source_type", Message: p.SourceType}))
	}

	var metaBytes []byte
	if len(p.Metadata) > 0 {
		metaBytes, _ = json.Marshal(p.Metadata)
	}

	entry := &Earning{
		ID:         s.node.Generate().String(),
		UserID:     p.OwnerID,
		Amount:     amount,
		SourceType: p.SourceType,
		SourceID:   p.SourceID,
		Metadata:   datatypes.JSON(metaBytes),
		CreatedAt:  time.Now(),
	}

	// The ledger insert and the balance bump commit together. The balance is
	// an atomic SQL increment, never a read-modify-write, so concurrent views
	// of the same owner cannot lose updates.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.WithTrx(tx).Create(ctx, entry); err != nil {
			return err
		}

		if owner == nil {
			return nil
		}

		return s.users.WithTrx(tx).Update(ctx, owner.ID, map[string]any{
			"point_balance": gorm.Expr("point_balance + ?", amount),
			"updated_at":    time.Now(),
		})
	}); err != nil {
		zapLog.Error("failed to record view credit", zap.Error(err))
		return nil, err
	}

	return entry, nil
}

// GetBalance returns the owner's cached point balance.
func (s *Service) GetBalance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, errutil.BadRequest("user id required", nil)
	}

	owner, err := s.users.FindOne(ctx, &user.User{ID: userID})
	if err != nil {
		s.log(ctx).Error("failed to query balance", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}

	if owner == nil {
		return 0, errutil.NotFound("user not found", nil)
	}

	return owner.PointBalance, nil
}

// GetLedger returns every earnings entry for a user, oldest first. Entries
// already returned are immutable; later calls may only append.
func (s *Service) GetLedger(ctx context.Context, userID string) ([]*Earning, error) {
	if userID == "" {
		return nil, errutil.BadRequest("user id required", nil)
	}

	entries, err := s.ledger.Find(ctx, &Earning{UserID: userID}, option.WithSortBy(option.QuerySortBy{
		SortBy:  "created_at",
		OrderBy: "asc",
		Allow:   map[string]bool{"created_at": true},
	}))
	if err != nil {
		s.log(ctx).Error("failed to query ledger", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return entries, nil
}

// Reconcile checks the consistency invariant: the cached balance must equal
// the sum of the user's ledger entries.
func (s *Service) Reconcile(ctx context.Context, userID string) (bool, error) {
	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return false, err
	}

	entries, err := s.GetLedger(ctx, userID)
	if err != nil {
		return false, err
	}

	var total int64
	for _, e := range entries {
		total += e.Amount
	}

	if total != balance {
		s.log(ctx).Warn("ledger does not reconcile with cached balance",
			zap.String("user_id", userID),
			zap.Int64("ledger_total", total),
			zap.Int64("cached_balance", balance),
		)
		return false, nil
	}

	return true, nil
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	return zap.L().With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("span_id", span.SpanContext().SpanID().String()),
	)
}
