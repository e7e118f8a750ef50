package repositories

import (
	"github.com/framez-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for post-like edge operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID, userID uint) error
	HasUserLikedPost(postID, userID uint) (bool, error)
	GetLikesByPostID(postID uint, limit int) ([]models.Like, error)
	GetLikedPostIDs(userID uint) ([]uint, error)
	DeleteLikesByPostID(postID uint) error
	CountByPostID(postID uint) (int64, error)
	WithTx(tx *gorm.DB) LikeRepository
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PostgresLikeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &PostgresLikeRepository{db: tx}
}

// CreateLike creates a new like edge in PostgreSQL
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes the like edge for the exact (post, user) pair.
func (r *PostgresLikeRepository) DeleteLike(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}

// HasUserLikedPost is a point existence check on the (post, user) index.
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

// GetLikesByPostID retrieves up to limit like edges for a post in
// insertion order.
func (r *PostgresLikeRepository) GetLikesByPostID(postID uint, limit int) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.Where("post_id = ?", postID).Order("id").Limit(limit).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// GetLikedPostIDs lists the IDs of all posts a user has liked.
func (r *PostgresLikeRepository) GetLikedPostIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Pluck("post_id", &ids).Error
	return ids, err
}

// DeleteLikesByPostID deletes all like edges referencing a post.
func (r *PostgresLikeRepository) DeleteLikesByPostID(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Like{}).Error
}

// CountByPostID counts live like edges for a post. Reconciliation only.
func (r *PostgresLikeRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
