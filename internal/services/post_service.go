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

// defaultListLimit caps flat list reads when the caller does not supply
// a limit; maxListLimit caps what a caller may ask for.
const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// PostService implements post store operations. Counters are initialized
// to zero at creation and only ever move through the engagement and
// comment paths.
type PostService struct {
	db           *gorm.DB
	posts        repositories.PostRepository
	comments     repositories.CommentRepository
	likes        repositories.LikeRepository
	commentLikes repositories.CommentLikeRepository
	users        repositories.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(
	db *gorm.DB,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	commentLikes repositories.CommentLikeRepository,
	users repositories.UserRepository,
) *PostService {
	return &PostService{
		db:           db,
		posts:        posts,
		comments:     comments,
		likes:        likes,
		commentLikes: commentLikes,
		users:        users,
	}
}

// Create inserts a new post for the caller. At least one of caption or
// image URL must be present; the heavy image transfer already happened
// against blob storage, only the reference arrives here.
func (s *PostService) Create(ctx context.Context, caller identity.Caller, caption, imageURL string) (*models.Post, error) {
	if !caller.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}

	caption = strings.TrimSpace(caption)
	if caption == "" && imageURL == "" {
		return nil, errs.ErrEmptyPost
	}

	post := &models.Post{
		AuthorID: caller.UserID,
		Caption:  caption,
		ImageURL: imageURL,
	}
	if err := s.posts.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Feed returns the most recent posts, newest first, each joined with the
// author's snapshot. A missing author yields a null author rather than
// failing the whole read.
func (s *PostService) Feed(ctx context.Context, limit int) ([]models.PostWithAuthor, error) {
	if limit <= 0 {
		limit = defaultListLimit
	} else if limit > maxListLimit {
		limit = maxListLimit
	}
	posts, err := s.posts.GetAllPosts(limit)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(posts), nil
}

// ListByAuthor returns all posts by one author, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.posts.GetPostsByAuthorID(authorID)
}

// GetByID returns a single post with its author snapshot.
func (s *PostService) GetByID(ctx context.Context, postID uint) (*models.PostWithAuthor, error) {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPostNotFound
		}
		return nil, err
	}
	enriched := s.withAuthors([]models.Post{*post})
	return &enriched[0], nil
}

// UpdateCaption edits a post caption. Only the post's author may edit it.
func (s *PostService) UpdateCaption(ctx context.Context, caller identity.Caller, postID uint, caption string) error {
	if !caller.Authenticated() {
		return errs.ErrUnauthenticated
	}
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != caller.UserID {
		return errs.ErrForbidden
	}
	post.Caption = caption
	return s.posts.UpdatePost(post)
}

// Delete removes a post and cascades: all comments on the post, all like
// edges on the post and all like edges on those comments go in the same
// transaction, so nothing is left pointing at a deleted post.
func (s *PostService) Delete(ctx context.Context, caller identity.Caller, postID uint) error {
	if !caller.Authenticated() {
		return errs.ErrUnauthenticated
	}
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != caller.UserID {
		return errs.ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := s.comments.WithTx(tx)
		commentIDs, err := comments.GetCommentIDsByPostID(postID)
		if err != nil {
			return err
		}
		if err := s.commentLikes.WithTx(tx).DeleteByCommentIDs(commentIDs); err != nil {
			return err
		}
		if err := comments.DeleteCommentsByPostID(postID); err != nil {
			return err
		}
		if err := s.likes.WithTx(tx).DeleteLikesByPostID(postID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).DeletePost(postID)
	})
}

// withAuthors joins posts with author snapshots, fetching each distinct
// author once.
func (s *PostService) withAuthors(posts []models.Post) []models.PostWithAuthor {
	snapshots := make(map[uint]*models.UserCompact)
	enriched := make([]models.PostWithAuthor, 0, len(posts))
	for _, post := range posts {
		snapshot, ok := snapshots[post.AuthorID]
		if !ok {
			if user, err := s.users.GetUserByID(post.AuthorID); err == nil {
				compact := user.ToCompact()
				snapshot = &compact
			}
			snapshots[post.AuthorID] = snapshot
		}
		enriched = append(enriched, models.PostWithAuthor{Post: post, Author: snapshot})
	}
	return enriched
}
