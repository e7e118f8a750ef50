package services

import (
	"context"
	"testing"

	"github.com/framez-app/backend/internal/identity"
	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/repositories"
	"github.com/framez-app/backend/internal/testutil"
	"github.com/framez-app/backend/pkg/errs"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(repositories.NewPostgresUserRepository(db))
}

func TestGetCurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")

	user, err := svc.GetCurrent(ctx, identity.Caller{UserID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Handle)

	// Anonymous callers have no profile, which is not an error.
	user, err = svc.GetCurrent(ctx, identity.Anonymous)
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestGetByHandle(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "Alice", "alice")

	user, err := svc.GetByHandle(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)

	_, err = svc.GetByHandle(ctx, "nobody")
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestCreateOrUpdateProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	testutil.CreateUser(t, db, "Bob", "bob")
	caller := identity.Caller{UserID: alice.ID}

	// Taking another user's handle or email is rejected at commit time.
	_, err := svc.CreateOrUpdateProfile(ctx, caller, models.UpsertProfileRequest{
		Name: "Alice", Handle: "bob", Email: "alice@example.com",
	})
	require.ErrorIs(t, err, errs.ErrHandleTaken)

	_, err = svc.CreateOrUpdateProfile(ctx, caller, models.UpsertProfileRequest{
		Name: "Alice", Handle: "alice", Email: "bob@example.com",
	})
	require.ErrorIs(t, err, errs.ErrEmailTaken)

	// Re-saving your own handle is not a conflict.
	updated, err := svc.CreateOrUpdateProfile(ctx, caller, models.UpsertProfileRequest{
		Name: "Alice B", Handle: "alice", Email: "alice@example.com", Bio: "hi",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice B", updated.Name)
	require.Equal(t, "hi", updated.Bio)
}

func TestProfileUpdatePreservesCounters(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	engagement := newEngagementService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")

	_, err := engagement.ToggleFollow(ctx, identity.Caller{UserID: bob.ID}, alice.ID)
	require.NoError(t, err)

	updated, err := svc.CreateOrUpdateProfile(ctx, identity.Caller{UserID: alice.ID}, models.UpsertProfileRequest{
		Name: "Alice B", Handle: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, 1, updated.FollowersCount)
	require.Equal(t, 1, getUser(t, db, alice.ID).FollowersCount)
}

func TestCheckHandleAvailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "Alice", "alice")

	avail, err := svc.CheckHandleAvailable(ctx, "alice")
	require.NoError(t, err)
	require.False(t, avail.Available)

	avail, err = svc.CheckHandleAvailable(ctx, "bob")
	require.NoError(t, err)
	require.True(t, avail.Available)

	avail, err = svc.CheckHandleAvailable(ctx, "ab")
	require.NoError(t, err)
	require.False(t, avail.Available)
	require.Equal(t, "Handle must be at least 3 characters", avail.Message)
}

func TestCheckEmailAvailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "Alice", "alice")

	avail, err := svc.CheckEmailAvailable(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, avail.Available)

	avail, err = svc.CheckEmailAvailable(ctx, "new@example.com")
	require.NoError(t, err)
	require.True(t, avail.Available)
}

func TestGetByIDWithRetry(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")

	user, err := svc.GetByIDWithRetry(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Handle)

	// Exhausting the retries on a record that never appears.
	_, err = svc.GetByIDWithRetry(ctx, 9999)
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestReconcileRepairsDrift(t *testing.T) {
	db := testutil.NewTestDB(t)
	reconcile := newReconcileService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	// Inject drift: edges without matching counters.
	require.NoError(t, db.Create(&models.Like{PostID: post.ID, UserID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumn("likes_count", 7).Error)

	_, err := reconcile.RecountAll(ctx)
	require.NoError(t, err)

	require.Equal(t, 1, getPost(t, db, post.ID).LikesCount)
	require.Equal(t, 1, getUser(t, db, alice.ID).FollowersCount)
	require.Equal(t, 1, getUser(t, db, bob.ID).FollowingCount)
}
