package repositories

import (
	"github.com/framez-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment-like edge operations
type CommentLikeRepository interface {
	CreateCommentLike(like *models.CommentLike) error
	DeleteCommentLike(commentID, userID uint) error
	HasUserLikedComment(commentID, userID uint) (bool, error)
	GetLikedCommentIDs(userID uint) ([]uint, error)
	DeleteByCommentID(commentID uint) error
	DeleteByCommentIDs(commentIDs []uint) error
	CountByCommentID(commentID uint) (int64, error)
	WithTx(tx *gorm.DB) CommentLikeRepository
}

type postgresCommentLikeRepository struct {
	db *gorm.DB
}

func NewPostgresCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: db}
}

func (r *postgresCommentLikeRepository) WithTx(tx *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: tx}
}

func (r *postgresCommentLikeRepository) CreateCommentLike(like *models.CommentLike) error {
	return r.db.Create(like).Error
}

func (r *postgresCommentLikeRepository) DeleteCommentLike(commentID, userID uint) error {
	return r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error
}

func (r *postgresCommentLikeRepository) HasUserLikedComment(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}

func (r *postgresCommentLikeRepository) GetLikedCommentIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.CommentLike{}).Where("user_id = ?", userID).Pluck("comment_id", &ids).Error
	return ids, err
}

// DeleteByCommentID deletes all like edges on one comment. Part of the
// comment-delete cascade.
func (r *postgresCommentLikeRepository) DeleteByCommentID(commentID uint) error {
	return r.db.Where("comment_id = ?", commentID).Delete(&models.CommentLike{}).Error
}

// DeleteByCommentIDs deletes all like edges on a set of comments. Part of
// the post-delete cascade.
func (r *postgresCommentLikeRepository) DeleteByCommentIDs(commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error
}

func (r *postgresCommentLikeRepository) CountByCommentID(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
