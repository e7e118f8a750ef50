package repositories

import (
	"github.com/framez-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post store operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetAllPosts(limit int) ([]models.Post, error)
	GetPostsByAuthorID(authorID uint) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	IncrementLikesCount(postID uint) error
	DecrementLikesCount(postID uint) error
	IncrementCommentsCount(postID uint) error
	DecrementCommentsCount(postID uint) error
	WithTx(tx *gorm.DB) PostRepository
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *PostgresPostRepository) WithTx(tx *gorm.DB) PostRepository {
	return &PostgresPostRepository{db: tx}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves the most recent posts, newest first.
func (r *PostgresPostRepository) GetAllPosts(limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthorID retrieves all posts by one author, newest first.
func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post row. Cascading of comments and like edges is
// the caller's responsibility and happens in the same transaction.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// IncrementLikesCount increments the likes count of a post
func (r *PostgresPostRepository) IncrementLikesCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
}

// DecrementLikesCount decrements the likes count of a post, floored at zero.
func (r *PostgresPostRepository) DecrementLikesCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND likes_count > 0", postID).
		UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
}

// IncrementCommentsCount increments the comments count of a post
func (r *PostgresPostRepository) IncrementCommentsCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
}

// DecrementCommentsCount decrements the comments count of a post, floored at zero.
func (r *PostgresPostRepository) DecrementCommentsCount(postID uint) error {
	return r.db.Model(&models.Post{}).Where("id = ? AND comments_count > 0", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
}
