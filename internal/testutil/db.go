// Package testutil provides shared test fixtures.
package testutil

import (
	"testing"

	"github.com/framez-app/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database with the full relational
// schema migrated. Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.Follow{},
	))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// CreateUser inserts a user with sane defaults and returns it.
func CreateUser(t *testing.T, db *gorm.DB, name, handle string) *models.User {
	t.Helper()

	user := &models.User{
		Name:   name,
		Handle: handle,
		Email:  handle + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts a post for the given author and returns it.
func CreatePost(t *testing.T, db *gorm.DB, authorID uint, caption string) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID: authorID,
		Caption:  caption,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
