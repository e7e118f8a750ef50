package repositories

import (
	"github.com/framez-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint, limit int) ([]models.User, error)
	GetFollowing(userID uint, limit int) ([]models.User, error)
	CountFollowers(userID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)
	WithTx(tx *gorm.DB) FollowRepository
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PostgresFollowRepository) WithTx(tx *gorm.DB) FollowRepository {
	return &PostgresFollowRepository{db: tx}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

// IsFollowing is a point existence check on the (follower, following) index.
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error
	return count > 0, err
}

// GetFollowers returns up to limit users following userID, in edge
// insertion order.
func (r *PostgresFollowRepository) GetFollowers(userID uint, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.id").Limit(limit).
		Find(&users).Error
	return users, err
}

// GetFollowing returns up to limit users that userID follows.
func (r *PostgresFollowRepository) GetFollowing(userID uint, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.id").Limit(limit).
		Find(&users).Error
	return users, err
}

// CountFollowers counts live follow edges pointing at userID. Reconciliation only.
func (r *PostgresFollowRepository) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing counts live follow edges originating from userID.
func (r *PostgresFollowRepository) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
