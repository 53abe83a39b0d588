package trending

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clipshare-platform/services/clip"
	"clipshare-platform/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t, &clip.Clip{})
	return NewService(ServiceParams{DB: db}), db
}

func seedClip(t *testing.T, db *gorm.DB, id string, visibility clip.Visibility, views int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, db.Create(&clip.Clip{
		ID:         id,
		OwnerID:    "u1",
		Title:      "clip " + id,
		URL:        "https://clips.example/" + id,
		Visibility: visibility,
		ViewCount:  views,
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error)
}

func TestListTrendingOrdersByViewCount(t *testing.T) {
	svc, db := newTestService(t)

	seedClip(t, db, "c1", clip.VisibilityPublic, 5)
	seedClip(t, db, "c2", clip.VisibilityPublic, 42)
	seedClip(t, db, "c3", clip.VisibilityPublic, 17)

	clips, err := svc.ListTrending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, clips, 3)
	require.Equal(t, "c2", clips[0].ID)
	require.Equal(t, "c3", clips[1].ID)
	require.Equal(t, "c1", clips[2].ID)
}

func TestListTrendingExcludesPrivateClips(t *testing.T) {
	svc, db := newTestService(t)

	seedClip(t, db, "c1", clip.VisibilityPublic, 5)
	seedClip(t, db, "c2", clip.VisibilityPrivate, 100)

	clips, err := svc.ListTrending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, clips, 1)
	require.Equal(t, "c1", clips[0].ID)
}

func TestListTrendingAppliesLimit(t *testing.T) {
	svc, db := newTestService(t)

	for i := 0; i < DefaultLimit+5; i++ {
		seedClip(t, db, clipID(i), clip.VisibilityPublic, int64(i))
	}

	clips, err := svc.ListTrending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, clips, DefaultLimit)

	clips, err = svc.ListTrending(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, clips, 3)
	require.Equal(t, clipID(DefaultLimit+4), clips[0].ID)
}

type boardStub struct {
	ids []string
	err error
}

func (b *boardStub) Top(ctx context.Context, n int64) ([]string, error) {
	return b.ids, b.err
}

func TestListTrendingServesBoardOrder(t *testing.T) {
	svc, db := newTestService(t)

	seedClip(t, db, "c1", clip.VisibilityPublic, 5)
	seedClip(t, db, "c2", clip.VisibilityPublic, 42)
	seedClip(t, db, "c3", clip.VisibilityPublic, 17)

	svc.board = &boardStub{ids: []string{"c1", "c3", "c2"}}

	clips, err := svc.ListTrending(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, clips, 3)
	require.Equal(t, "c1", clips[0].ID)
	require.Equal(t, "c3", clips[1].ID)
	require.Equal(t, "c2", clips[2].ID)
}

func TestListTrendingStaleBoardFallsBackToViewCounts(t *testing.T) {
	svc, db := newTestService(t)

	seedClip(t, db, "c1", clip.VisibilityPublic, 5)
	seedClip(t, db, "c2", clip.VisibilityPublic, 42)
	seedClip(t, db, "c3", clip.VisibilityPrivate, 99)

	// "ghost" was deleted and c3 went private; the board cannot fill the
	// shelf, so the persisted counts win.
	svc.board = &boardStub{ids: []string{"ghost", "c3", "c1"}}

	clips, err := svc.ListTrending(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, clips, 2)
	require.Equal(t, "c2", clips[0].ID)
	require.Equal(t, "c1", clips[1].ID)
}

func TestListTrendingBoardErrorFallsBackToViewCounts(t *testing.T) {
	svc, db := newTestService(t)

	seedClip(t, db, "c1", clip.VisibilityPublic, 5)
	seedClip(t, db, "c2", clip.VisibilityPublic, 42)

	svc.board = &boardStub{err: errors.New("redis down")}

	clips, err := svc.ListTrending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, clips, 2)
	require.Equal(t, "c2", clips[0].ID)
}

func TestListTrendingEmptyCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	clips, err := svc.ListTrending(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, clips)
}

func clipID(i int) string {
	return "c" + strconv.Itoa(i)
}
