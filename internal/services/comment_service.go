package services

import (
	"context"
	"errors"
	"strings"

	"github.com/framez-app/backend/internal/identity"
	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/repositories"
	"github.com/framez-app/backend/pkg/errs"
	"gorm.io/gorm"
)

// CommentService implements comment store operations. Creating a comment
// increments the parent post's comments count and deleting one decrements
// it, both inside the same transaction as the row change.
type CommentService struct {
	db           *gorm.DB
	comments     repositories.CommentRepository
	posts        repositories.PostRepository
	commentLikes repositories.CommentLikeRepository
	users        repositories.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(
	db *gorm.DB,
	comments repositories.CommentRepository,
	posts repositories.PostRepository,
	commentLikes repositories.CommentLikeRepository,
	users repositories.UserRepository,
) *CommentService {
	return &CommentService{
		db:           db,
		comments:     comments,
		posts:        posts,
		commentLikes: commentLikes,
		users:        users,
	}
}

// Create inserts a comment on a post. Text must be non-empty after
// trimming. The parent post must still exist; commenting on a vanished
// post is rejected rather than leaving an orphaned comment.
func (s *CommentService) Create(ctx context.Context, caller identity.Caller, postID uint, text string) (*models.Comment, error) {
	if !caller.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.ErrEmptyComment
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: caller.UserID,
		Text:     text,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.posts.WithTx(tx).GetPostByID(postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrPostNotFound
			}
			return err
		}
		if err := s.comments.WithTx(tx).CreateComment(comment); err != nil {
			return err
		}
		return s.posts.WithTx(tx).IncrementCommentsCount(postID)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost returns all comments on a post, newest first, each enriched
// with the author's snapshot.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]models.CommentWithAuthor, error) {
	comments, err := s.comments.GetCommentsByPostID(postID)
	if err != nil {
		return nil, err
	}

	snapshots := make(map[uint]*models.UserCompact)
	enriched := make([]models.CommentWithAuthor, 0, len(comments))
	for _, comment := range comments {
		snapshot, ok := snapshots[comment.AuthorID]
		if !ok {
			if user, err := s.users.GetUserByID(comment.AuthorID); err == nil {
				compact := user.ToCompact()
				snapshot = &compact
			}
			snapshots[comment.AuthorID] = snapshot
		}
		enriched = append(enriched, models.CommentWithAuthor{Comment: comment, Author: snapshot})
	}
	return enriched, nil
}

// Delete removes a comment. Only its author may delete it. The comment's
// like edges are cascaded and the parent post's comments count is
// decremented (floored at zero) in the same transaction.
func (s *CommentService) Delete(ctx context.Context, caller identity.Caller, commentID uint) error {
	if !caller.Authenticated() {
		return errs.ErrUnauthenticated
	}
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != caller.UserID {
		return errs.ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentLikes.WithTx(tx).DeleteByCommentID(commentID); err != nil {
			return err
		}
		if err := s.comments.WithTx(tx).DeleteComment(commentID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).DecrementCommentsCount(comment.PostID)
	})
}
