package repositories

import (
	"github.com/framez-app/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user directory operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByHandle(handle string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	IncrementFollowersCount(id uint) error
	DecrementFollowersCount(id uint) error
	IncrementFollowingCount(id uint) error
	DecrementFollowingCount(id uint) error
	WithTx(tx *gorm.DB) UserRepository
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PostgresUserRepository) WithTx(tx *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: tx}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByHandle retrieves a user by handle. The match is exact and
// case-sensitive.
func (r *PostgresUserRepository) GetUserByHandle(handle string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("handle = ?", handle).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// IncrementFollowersCount bumps the denormalized follower counter by one.
func (r *PostgresUserRepository) IncrementFollowersCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
}

// DecrementFollowersCount lowers the follower counter, floored at zero.
// A decrement on an already-zero counter is a no-op, not a negative value.
func (r *PostgresUserRepository) DecrementFollowersCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND followers_count > 0", id).
		UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
}

// IncrementFollowingCount bumps the denormalized following counter by one.
func (r *PostgresUserRepository) IncrementFollowingCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error
}

// DecrementFollowingCount lowers the following counter, floored at zero.
func (r *PostgresUserRepository) DecrementFollowingCount(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND following_count > 0", id).
		UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error
}
