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

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(
		db,
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentLikeRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
}

func TestCreateComment(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, alice.ID, "hello")
	caller := identity.Caller{UserID: bob.ID}

	comment, err := svc.Create(ctx, caller, post.ID, "  nice shot  ")
	require.NoError(t, err)
	require.Equal(t, "nice shot", comment.Text)
	require.Equal(t, 1, getPost(t, db, post.ID).CommentsCount)

	_, err = svc.Create(ctx, caller, post.ID, "   ")
	require.ErrorIs(t, err, errs.ErrEmptyComment)

	_, err = svc.Create(ctx, identity.Anonymous, post.ID, "hi")
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	// Commenting on a vanished post is rejected and moves no counter.
	_, err = svc.Create(ctx, caller, 9999, "hi")
	require.ErrorIs(t, err, errs.ErrPostNotFound)
	require.Equal(t, 1, getPost(t, db, post.ID).CommentsCount)
}

func TestListCommentsByPost(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCommentService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	first, err := svc.Create(ctx, identity.Caller{UserID: alice.ID}, post.ID, "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, identity.Caller{UserID: bob.ID}, post.ID, "second")
	require.NoError(t, err)

	comments, err := svc.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, second.ID, comments[0].ID)
	require.Equal(t, first.ID, comments[1].ID)
	require.NotNil(t, comments[0].Author)
	require.Equal(t, "bob", comments[0].Author.Handle)

	// A vanished commenter shows as a null author snapshot.
	require.NoError(t, db.Delete(&models.User{}, bob.ID).Error)
	comments, err = svc.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Nil(t, comments[0].Author)
}

func TestDeleteComment(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCommentService(db)
	engagement := newEngagementService(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "Alice", "alice")
	bob := testutil.CreateUser(t, db, "Bob", "bob")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	comment, err := svc.Create(ctx, identity.Caller{UserID: bob.ID}, post.ID, "mine")
	require.NoError(t, err)

	// Someone likes the comment before it is deleted.
	_, err = engagement.ToggleCommentLike(ctx, identity.Caller{UserID: alice.ID}, comment.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, identity.Caller{UserID: alice.ID}, comment.ID)
	require.ErrorIs(t, err, errs.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, identity.Caller{UserID: bob.ID}, comment.ID))
	require.Zero(t, getPost(t, db, post.ID).CommentsCount)

	// The comment's like edges went with it.
	var likes int64
	require.NoError(t, db.Model(&models.CommentLike{}).Count(&likes).Error)
	require.Zero(t, likes)

	err = svc.Delete(ctx, identity.Caller{UserID: bob.ID}, comment.ID)
	require.ErrorIs(t, err, errs.ErrCommentNotFound)
}
