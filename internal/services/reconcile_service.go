package services

import (
	"context"

	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// ReconcileService recomputes denormalized counters from their edge
// tables. Normal operation never calls this; it exists as a repair tool
// for counter drift and as an oracle for tests, independent of the
// increment/decrement path.
type ReconcileService struct {
	db           *gorm.DB
	comments     repositories.CommentRepository
	likes        repositories.LikeRepository
	commentLikes repositories.CommentLikeRepository
	follows      repositories.FollowRepository
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(
	db *gorm.DB,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	commentLikes repositories.CommentLikeRepository,
	follows repositories.FollowRepository,
) *ReconcileService {
	return &ReconcileService{
		db:           db,
		comments:     comments,
		likes:        likes,
		commentLikes: commentLikes,
		follows:      follows,
	}
}

// ReconcileReport summarizes one reconciliation run.
type ReconcileReport struct {
	PostsChecked    int64 `json:"posts_checked"`
	CommentsChecked int64 `json:"comments_checked"`
	UsersChecked    int64 `json:"users_checked"`
}

// RecountPost rewrites one post's counters from the likes and comments tables.
func (s *ReconcileService) RecountPost(ctx context.Context, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes, err := s.likes.WithTx(tx).CountByPostID(postID)
		if err != nil {
			return err
		}
		comments, err := s.comments.WithTx(tx).CountByPostID(postID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumns(map[string]interface{}{
				"likes_count":    likes,
				"comments_count": comments,
			}).Error
	})
}

// RecountComment rewrites one comment's like counter from the
// comment_likes table.
func (s *ReconcileService) RecountComment(ctx context.Context, commentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes, err := s.commentLikes.WithTx(tx).CountByCommentID(commentID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes_count", likes).Error
	})
}

// RecountUser rewrites one user's follow counters from the follows table.
func (s *ReconcileService) RecountUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follows := s.follows.WithTx(tx)
		followers, err := follows.CountFollowers(userID)
		if err != nil {
			return err
		}
		following, err := follows.CountFollowing(userID)
		if err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"followers_count": followers,
				"following_count": following,
			}).Error
	})
}

// RecountAll walks every post, comment and user and rewrites their
// counters from edge counts.
func (s *ReconcileService) RecountAll(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	var postIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Pluck("id", &postIDs).Error; err != nil {
		return report, err
	}
	for _, id := range postIDs {
		if err := s.RecountPost(ctx, id); err != nil {
			return report, err
		}
		report.PostsChecked++
	}

	var commentIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).Pluck("id", &commentIDs).Error; err != nil {
		return report, err
	}
	for _, id := range commentIDs {
		if err := s.RecountComment(ctx, id); err != nil {
			return report, err
		}
		report.CommentsChecked++
	}

	var userIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		return report, err
	}
	for _, id := range userIDs {
		if err := s.RecountUser(ctx, id); err != nil {
			return report, err
		}
		report.UsersChecked++
	}

	return report, nil
}
