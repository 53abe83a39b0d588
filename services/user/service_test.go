package user

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
	"clipshare-platform/services/testutil"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t, &User{}, &Follow{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParams{DB: db, Node: node}), db
}

func seedUser(t *testing.T, db *gorm.DB, u User) {
	t.Helper()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	require.NoError(t, db.Create(&u).Error)
}

func TestGetUser(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "streamer", IsVerified: true})

	u, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "streamer", u.Username)
	require.True(t, u.IsVerified)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), "ghost")
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusNotFound, be.Status())
}

func TestGetUserEmptyID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUser(context.Background(), "")
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusBadRequest, be.Status())
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "streamer", Bio: "hi"})

	updated, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileParams{
		DisplayName: "Streamer Prime",
	})
	require.NoError(t, err)
	require.Equal(t, "Streamer Prime", updated.DisplayName)
	require.Equal(t, "streamer", updated.Username)
	require.Equal(t, "hi", updated.Bio)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateProfile(context.Background(), "ghost", UpdateProfileParams{Bio: "x"})
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusNotFound, be.Status())
}

func TestListOfficials(t *testing.T) {
	svc, db := newTestService(t)

	base := time.Now().Add(-time.Hour)
	seedUser(t, db, User{ID: "u1", Username: "old-official", IsVerified: true, CreatedAt: base})
	seedUser(t, db, User{ID: "u2", Username: "viewer", IsVerified: false, CreatedAt: base.Add(time.Minute)})
	seedUser(t, db, User{ID: "u3", Username: "new-official", IsVerified: true, CreatedAt: base.Add(2 * time.Minute)})

	officials, err := svc.ListOfficials(context.Background())
	require.NoError(t, err)
	require.Len(t, officials, 2)
	require.Equal(t, "u3", officials[0].ID)
	require.Equal(t, "u1", officials[1].ID)
}

func TestVerifiedOwners(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "a", IsVerified: true})
	seedUser(t, db, User{ID: "u2", Username: "b", IsVerified: false})

	flags, err := svc.VerifiedOwners(context.Background(), []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	require.Len(t, flags, 2)
	require.True(t, flags["u1"])
	require.False(t, flags["u2"])

	_, ok := flags["ghost"]
	require.False(t, ok)
}

func TestFollowUser(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "fan"})
	seedUser(t, db, User{ID: "u2", Username: "streamer"})
	ctx := context.Background()

	link, err := svc.FollowUser(ctx, "u1", "u2")
	require.NoError(t, err)
	require.NotEmpty(t, link.ID)
	require.Equal(t, "u1", link.FollowerID)
	require.Equal(t, "u2", link.FollowingID)

	fan, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(1), fan.Following)
	require.Zero(t, fan.Followers)

	streamer, err := svc.GetUser(ctx, "u2")
	require.NoError(t, err)
	require.Equal(t, int64(1), streamer.Followers)
	require.Zero(t, streamer.Following)
}

func TestFollowUserTwiceConflicts(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "fan"})
	seedUser(t, db, User{ID: "u2", Username: "streamer"})
	ctx := context.Background()

	_, err := svc.FollowUser(ctx, "u1", "u2")
	require.NoError(t, err)

	_, err = svc.FollowUser(ctx, "u1", "u2")
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusConflict, be.Status())

	streamer, err := svc.GetUser(ctx, "u2")
	require.NoError(t, err)
	require.Equal(t, int64(1), streamer.Followers)
}

func TestFollowUserValidation(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "fan"})

	_, err := svc.FollowUser(context.Background(), "u1", "u1")
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusBadRequest, be.Status())

	_, err = svc.FollowUser(context.Background(), "u1", "ghost")
	require.Error(t, err)
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusNotFound, be.Status())
}

func TestUnfollowUser(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "fan"})
	seedUser(t, db, User{ID: "u2", Username: "streamer"})
	ctx := context.Background()

	_, err := svc.FollowUser(ctx, "u1", "u2")
	require.NoError(t, err)
	require.NoError(t, svc.UnfollowUser(ctx, "u1", "u2"))

	fan, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, fan.Following)

	streamer, err := svc.GetUser(ctx, "u2")
	require.NoError(t, err)
	require.Zero(t, streamer.Followers)

	// The pair can follow again after unfollowing.
	_, err = svc.FollowUser(ctx, "u1", "u2")
	require.NoError(t, err)
}

func TestUnfollowUserNotFollowing(t *testing.T) {
	svc, db := newTestService(t)
	seedUser(t, db, User{ID: "u1", Username: "fan"})
	seedUser(t, db, User{ID: "u2", Username: "streamer"})

	err := svc.UnfollowUser(context.Background(), "u1", "u2")
	require.Error(t, err)

	var be errutil.BaseError
	require.True(t, errors.As(err, &be))
	require.Equal(t, errutil.StatusNotFound, be.Status())
}

func TestVerifiedOwnersEmptyInput(t *testing.T) {
	svc, _ := newTestService(t)

	flags, err := svc.VerifiedOwners(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, flags)
}
