package repositories

import (
	"github.com/framez-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment store operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
	GetCommentIDsByPostID(postID uint) ([]uint, error)
	DeleteComment(id uint) error
	DeleteCommentsByPostID(postID uint) error
	CountByPostID(postID uint) (int64, error)
	IncrementLikesCount(commentID uint) error
	DecrementLikesCount(commentID uint) error
	WithTx(tx *gorm.DB) CommentRepository
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PostgresCommentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &PostgresCommentRepository{db: tx}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post, newest first.
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentIDsByPostID lists the IDs of all comments on a post. Used by
// the post-delete cascade to clear comment-like edges first.
func (r *PostgresCommentRepository) GetCommentIDsByPostID(postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Pluck("id", &ids).Error
	return ids, err
}

// DeleteComment deletes a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// DeleteCommentsByPostID deletes all comments belonging to a post.
func (r *PostgresCommentRepository) DeleteCommentsByPostID(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Comment{}).Error
}

// CountByPostID counts live comment rows for a post. Reconciliation only;
// display reads trust the denormalized counter.
func (r *PostgresCommentRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// IncrementLikesCount increments the likes count of a comment
func (r *PostgresCommentRepository) IncrementLikesCount(commentID uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
}

// DecrementLikesCount decrements the likes count of a comment, floored at zero.
func (r *PostgresCommentRepository) DecrementLikesCount(commentID uint) error {
	return r.db.Model(&models.Comment{}).Where("id = ? AND likes_count > 0", commentID).
		UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
}
