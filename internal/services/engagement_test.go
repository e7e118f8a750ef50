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

func newEngagementService(db *gorm.DB) *EngagementService {
	return NewEngagementService(
		db,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentLikeRepository(db),
		repositories.NewPostgresFollowRepository(db),
	)
}

func newReconcileService(db *gorm.DB) *ReconcileService {
	return NewReconcileService(
		db,
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentLikeRepository(db),
		repositories.NewPostgresFollowRepository(db),
	)
}

func getPost(t *testing.T, db *gorm.DB, id uint) models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, id).Error)
	return post
}

func getUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user
}

func TestTogglePostLike(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Alice", "alice")
	liker := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, author.ID, "hello")
	caller := identity.Caller{UserID: liker.ID}

	// First toggle creates the edge and bumps the counter.
	active, err := svc.TogglePostLike(ctx, caller, post.ID)
	require.NoError(t, err)
	require.True(t, active)
	require.Equal(t, 1, getPost(t, db, post.ID).LikesCount)

	liked, err := svc.HasLikedPost(ctx, caller, post.ID)
	require.NoError(t, err)
	require.True(t, liked)

	// Second toggle removes it again.
	active, err = svc.TogglePostLike(ctx, caller, post.ID)
	require.NoError(t, err)
	require.False(t, active)
	require.Equal(t, 0, getPost(t, db, post.ID).LikesCount)

	liked, err = svc.HasLikedPost(ctx, caller, post.ID)
	require.NoError(t, err)
	require.False(t, liked)

	var edges int64
	require.NoError(t, db.Model(&models.Like{}).Count(&edges).Error)
	require.Zero(t, edges)
}

func TestTogglePostLikeUnauthenticated(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Alice", "alice")
	post := testutil.CreatePost(t, db, author.ID, "hello")

	_, err := svc.TogglePostLike(ctx, identity.Anonymous, post.ID)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	// Existence checks degrade to false instead of failing.
	liked, err := svc.HasLikedPost(ctx, identity.Anonymous, post.ID)
	require.NoError(t, err)
	require.False(t, liked)

	ids, err := svc.GetLikedPostIDs(ctx, identity.Anonymous)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestTogglePostLikeMissingPost(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)

	liker := testutil.CreateUser(t, db, "Bob", "bob")
	_, err := svc.TogglePostLike(context.Background(), identity.Caller{UserID: liker.ID}, 9999)
	require.ErrorIs(t, err, errs.ErrPostNotFound)
}

func TestToggleCommentLike(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Alice", "alice")
	liker := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, author.ID, "hello")
	comment := models.Comment{PostID: post.ID, AuthorID: author.ID, Text: "first"}
	require.NoError(t, db.Create(&comment).Error)
	caller := identity.Caller{UserID: liker.ID}

	active, err := svc.ToggleCommentLike(ctx, caller, comment.ID)
	require.NoError(t, err)
	require.True(t, active)

	var got models.Comment
	require.NoError(t, db.First(&got, comment.ID).Error)
	require.Equal(t, 1, got.LikesCount)

	active, err = svc.ToggleCommentLike(ctx, caller, comment.ID)
	require.NoError(t, err)
	require.False(t, active)

	require.NoError(t, db.First(&got, comment.ID).Error)
	require.Zero(t, got.LikesCount)

	_, err = svc.ToggleCommentLike(ctx, caller, 9999)
	require.ErrorIs(t, err, errs.ErrCommentNotFound)
}

func TestToggleFollow(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	caller := identity.Caller{UserID: alice.ID}

	// Following moves both counters in one transaction.
	active, err := svc.ToggleFollow(ctx, caller, bob.ID)
	require.NoError(t, err)
	require.True(t, active)
	require.Equal(t, 1, getUser(t, db, bob.ID).FollowersCount)
	require.Equal(t, 1, getUser(t, db, alice.ID).FollowingCount)

	following, err := svc.IsFollowing(ctx, caller, bob.ID)
	require.NoError(t, err)
	require.True(t, following)

	// Unfollowing moves both back.
	active, err = svc.ToggleFollow(ctx, caller, bob.ID)
	require.NoError(t, err)
	require.False(t, active)
	require.Zero(t, getUser(t, db, bob.ID).FollowersCount)
	require.Zero(t, getUser(t, db, alice.ID).FollowingCount)
}

func TestToggleFollowSelf(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	_, err := svc.ToggleFollow(context.Background(), identity.Caller{UserID: alice.ID}, alice.ID)
	require.ErrorIs(t, err, errs.ErrSelfFollow)

	// No edge, no counter movement.
	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edges).Error)
	require.Zero(t, edges)
	require.Zero(t, getUser(t, db, alice.ID).FollowersCount)
	require.Zero(t, getUser(t, db, alice.ID).FollowingCount)
}

func TestToggleFollowMissingTarget(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	_, err := svc.ToggleFollow(context.Background(), identity.Caller{UserID: alice.ID}, 9999)
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestDecrementFloorsAtZero(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Alice", "alice")
	liker := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, author.ID, "hello")
	caller := identity.Caller{UserID: liker.ID}

	_, err := svc.TogglePostLike(ctx, caller, post.ID)
	require.NoError(t, err)

	// Simulate counter drift below the edge count.
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumn("likes_count", 0).Error)

	// The unlike decrement must not push the counter negative.
	active, err := svc.TogglePostLike(ctx, caller, post.ID)
	require.NoError(t, err)
	require.False(t, active)
	require.Zero(t, getPost(t, db, post.ID).LikesCount)
}

func TestCountersMatchEdgeCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)
	reconcile := newReconcileService(db)
	ctx := context.Background()

	users := make([]*models.User, 4)
	handles := []string{"alice", "bob", "carol", "dave"}
	for i, h := range handles {
		users[i] = testutil.CreateUser(t, db, h, h)
	}
	post := testutil.CreatePost(t, db, users[0].ID, "hello")

	// An uneven mix of likes, unlikes and follows.
	for _, u := range users[1:] {
		_, err := svc.TogglePostLike(ctx, identity.Caller{UserID: u.ID}, post.ID)
		require.NoError(t, err)
	}
	_, err := svc.TogglePostLike(ctx, identity.Caller{UserID: users[1].ID}, post.ID)
	require.NoError(t, err)
	for _, u := range users[1:] {
		_, err := svc.ToggleFollow(ctx, identity.Caller{UserID: u.ID}, users[0].ID)
		require.NoError(t, err)
	}
	_, err = svc.ToggleFollow(ctx, identity.Caller{UserID: users[2].ID}, users[0].ID)
	require.NoError(t, err)

	before := getPost(t, db, post.ID)
	owner := getUser(t, db, users[0].ID)

	// Recomputing from edge tables must be a no-op: the toggles left the
	// denormalized counters exactly equal to the edge counts.
	report, err := reconcile.RecountAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), report.PostsChecked)
	require.Equal(t, int64(4), report.UsersChecked)

	after := getPost(t, db, post.ID)
	require.Equal(t, before.LikesCount, after.LikesCount)
	require.Equal(t, 2, after.LikesCount)
	require.Equal(t, owner.FollowersCount, getUser(t, db, users[0].ID).FollowersCount)
	require.Equal(t, 2, getUser(t, db, users[0].ID).FollowersCount)
}

func TestGetFollowStatsMissingUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)

	stats, err := svc.GetFollowStats(context.Background(), 9999)
	require.NoError(t, err)
	require.Zero(t, stats.FollowersCount)
	require.Zero(t, stats.FollowingCount)
}

func TestGetPostLikesSnapshots(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newEngagementService(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "Alice", "alice")
	liker := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, author.ID, "hello")

	_, err := svc.TogglePostLike(ctx, identity.Caller{UserID: liker.ID}, post.ID)
	require.NoError(t, err)

	likes, err := svc.GetPostLikes(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.NotNil(t, likes[0].User)
	require.Equal(t, "bob", likes[0].User.Handle)

	// A vanished liker yields a null snapshot, not a dropped edge.
	require.NoError(t, db.Delete(&models.User{}, liker.ID).Error)
	likes, err = svc.GetPostLikes(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	require.Nil(t, likes[0].User)
}
