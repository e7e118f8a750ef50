package models

import "time"

// Post is an authored content record. LikesCount and CommentsCount are
// denormalized counters; reads trust them and never recount the edge
// tables on the display path.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AuthorID      uint      `json:"author_id" gorm:"index"`
	Caption       string    `json:"caption,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	LikesCount    int       `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int       `json:"comments_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PostWithAuthor is a post joined with a snapshot of its author's public
// profile fields. Author is null when the author record is missing.
type PostWithAuthor struct {
	Post
	Author *UserCompact `json:"author"`
}

// CreatePostRequest defines the request body for creating a new post.
// At least one of caption or image URL must be present.
type CreatePostRequest struct {
	Caption  string `json:"caption,omitempty" validate:"omitempty,max=2200"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateCaptionRequest defines the request body for editing a post caption.
type UpdateCaptionRequest struct {
	Caption string `json:"caption" validate:"max=2200"`
}
