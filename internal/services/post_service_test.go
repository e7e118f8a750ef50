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

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(
		db,
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentLikeRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
}

func TestCreatePost(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	caller := identity.Caller{UserID: alice.ID}

	post, err := svc.Create(ctx, caller, "first post", "")
	require.NoError(t, err)
	require.Equal(t, alice.ID, post.AuthorID)
	require.Zero(t, post.LikesCount)
	require.Zero(t, post.CommentsCount)

	// Image-only posts are fine; fully empty ones are not.
	_, err = svc.Create(ctx, caller, "", "https://cdn.example.com/a.jpg")
	require.NoError(t, err)

	_, err = svc.Create(ctx, caller, "   ", "")
	require.ErrorIs(t, err, errs.ErrEmptyPost)

	_, err = svc.Create(ctx, identity.Anonymous, "hi", "")
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestFeedOrderAndAuthors(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	first := testutil.CreatePost(t, db, alice.ID, "first")
	second := testutil.CreatePost(t, db, bob.ID, "second")

	feed, err := svc.Feed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, second.ID, feed[0].ID)
	require.Equal(t, first.ID, feed[1].ID)
	require.NotNil(t, feed[0].Author)
	require.Equal(t, "bob", feed[0].Author.Handle)

	// A feed with a vanished author still returns the post.
	require.NoError(t, db.Delete(&models.User{}, bob.ID).Error)
	feed, err = svc.Feed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Nil(t, feed[0].Author)
	require.NotNil(t, feed[1].Author)
}

func TestFeedLimitClamp(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	for i := 0; i < 60; i++ {
		testutil.CreatePost(t, db, alice.ID, "post")
	}

	// No limit falls back to the default.
	feed, err := svc.Feed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, feed, 50)

	// An oversized limit is capped at the maximum, not replaced by the
	// default.
	feed, err = svc.Feed(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, feed, 60)
}

func TestUpdateCaption(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, alice.ID, "before")

	err := svc.UpdateCaption(ctx, identity.Caller{UserID: bob.ID}, post.ID, "stolen")
	require.ErrorIs(t, err, errs.ErrForbidden)

	err = svc.UpdateCaption(ctx, identity.Caller{UserID: alice.ID}, 9999, "gone")
	require.ErrorIs(t, err, errs.ErrPostNotFound)

	require.NoError(t, svc.UpdateCaption(ctx, identity.Caller{UserID: alice.ID}, post.ID, "after"))
	got, err := svc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "after", got.Caption)
}

func TestDeletePostCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newPostService(db)
	engagement := newEngagementService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, alice.ID, "doomed")

	comment := models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "nice"}
	require.NoError(t, db.Create(&comment).Error)

	_, err := engagement.TogglePostLike(ctx, identity.Caller{UserID: bob.ID}, post.ID)
	require.NoError(t, err)
	_, err = engagement.ToggleCommentLike(ctx, identity.Caller{UserID: alice.ID}, comment.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, identity.Caller{UserID: bob.ID}, post.ID)
	require.ErrorIs(t, err, errs.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, identity.Caller{UserID: alice.ID}, post.ID))

	// Nothing survives: no post, no comments, no like edges either way.
	for _, model := range []interface{}{
		&models.Post{}, &models.Comment{}, &models.Like{}, &models.CommentLike{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}

	_, err = svc.GetByID(ctx, post.ID)
	require.ErrorIs(t, err, errs.ErrPostNotFound)
}
