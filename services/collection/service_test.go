package collection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clipshare-platform/pkg/errutil"
	"clipshare-platform/services/earnings"
	"clipshare-platform/services/testutil"
	"clipshare-platform/services/user"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t, &user.User{}, &earnings.Earning{}, &Collection{}, &CollectionClip{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	userSvc := user.NewService(user.ServiceParams{DB: db, Node: node})
	earningsSvc := earnings.NewService(earnings.ServiceParams{DB: db, Node: node})

	return NewService(ServiceParams{
		DB:       db,
		Node:     node,
		Users:    userSvc,
		Earnings: earningsSvc,
	}), db
}

func seedOwner(t *testing.T, db *gorm.DB, id string, verified bool) {
	t.Helper()
	require.NoError(t, db.Create(&user.User{
		ID:         id,
		Username:   "owner-" + id,
		IsVerified: verified,
		CreatedAt:  time.Now(),
	}).Error)
}

func seedCollection(t *testing.T, db *gorm.DB, id, ownerID string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&Collection{
		ID:        id,
		OwnerID:   ownerID,
		Title:     "collection " + id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}).Error)
}

func TestListCollectionsBoostsVerifiedOwners(t *testing.T) {
	svc, db := newTestService(t)

	seedOwner(t, db, "official", true)
	seedOwner(t, db, "casual", false)

	base := time.Now().Add(-time.Hour)
	seedCollection(t, db, "col1", "casual", base.Add(3*time.Minute))
	seedCollection(t, db, "col2", "official", base.Add(2*time.Minute))
	seedCollection(t, db, "col3", "casual", base.Add(time.Minute))

	colls, err := svc.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, colls, 3)
	require.Equal(t, "col2", colls[0].ID)
	require.Equal(t, "col1", colls[1].ID)
	require.Equal(t, "col3", colls[2].ID)
}

func TestCreateCollectionValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateCollection(context.Background(), CreateCollectionParams{Title: "t"})
	require.Error(t, err)

	_, err = svc.CreateCollection(context.Background(), CreateCollectionParams{OwnerID: "u1"})
	require.Error(t, err)

	coll, err := svc.CreateCollection(context.Background(), CreateCollectionParams{
		OwnerID: "u1",
		Title:   "best of ranked",
	})
	require.NoError(t, err)
	require.NotEmpty(t, coll.ID)
}

func TestUpdateCollection(t *testing.T) {
	svc, db := newTestService(t)
	seedCollection(t, db, "col1", "u1", time.Now())

	updated, err := svc.UpdateCollection(context.Background(), "col1", UpdateCollectionParams{
		Description: "season highlights",
	})
	require.NoError(t, err)
	require.Equal(t, "season highlights", updated.Description)
	require.Equal(t, "collection col1", updated.Title)
}

func TestAddClipAssignsPositions(t *testing.T) {
	svc, db := newTestService(t)
	seedCollection(t, db, "col1", "u1", time.Now())
	ctx := context.Background()

	for i, clipID := range []string{"c1", "c2", "c3"} {
		item, err := svc.AddClip(ctx, "col1", clipID)
		require.NoError(t, err)
		require.Equal(t, i, item.Position)
	}

	items, err := svc.ListClips(ctx, "col1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		require.Equal(t, i, item.Position)
	}
	require.Equal(t, "c1", items[0].ClipID)
	require.Equal(t, "c3", items[2].ClipID)
}

func TestAddClipUnknownCollection(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddClip(context.Background(), "ghost", "c1")
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusNotFound, be.Status())
}

func TestDeleteCollectionRemovesLinks(t *testing.T) {
	svc, db := newTestService(t)
	seedCollection(t, db, "col1", "u1", time.Now())
	ctx := context.Background()

	_, err := svc.AddClip(ctx, "col1", "c1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCollection(ctx, "col1"))

	_, err = svc.GetCollection(ctx, "col1")
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&CollectionClip{}).
		Where("collection_id = ?", "col1").Count(&count).Error)
	require.Zero(t, count)
}

func TestRecordCollectionViewCreditsOwner(t *testing.T) {
	svc, db := newTestService(t)

	seedOwner(t, db, "official", true)
	seedCollection(t, db, "col1", "official", time.Now())

	_, err := svc.RecordCollectionView(context.Background(), "col1")
	require.NoError(t, err)

	balance, err := svc.earnings.GetBalance(context.Background(), "official")
	require.NoError(t, err)
	require.Equal(t, int64(2), balance)

	ledger, err := svc.earnings.GetLedger(context.Background(), "official")
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	require.Equal(t, earnings.SourceCollectionView, ledger[0].SourceType)
	require.Equal(t, "col1", ledger[0].SourceID)
}

func TestRecordCollectionViewUnknownCollection(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordCollectionView(context.Background(), "ghost")
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusNotFound, be.Status())
}
