package models

import "time"

// Comment is a text reply to a post with its own denormalized like counter.
type Comment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PostID     uint      `json:"post_id" gorm:"index"`
	AuthorID   uint      `json:"author_id" gorm:"index"`
	Text       string    `json:"text"`
	LikesCount int       `json:"likes_count" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentWithAuthor is a comment joined with its author snapshot.
type CommentWithAuthor struct {
	Comment
	Author *UserCompact `json:"author"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}
