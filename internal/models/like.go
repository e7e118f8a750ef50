package models

import "time"

// Like is a post-like edge. The (post, user) pair is unique: at most one
// live edge per user per post.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeWithUser is a like edge enriched with the liking user's snapshot.
type LikeWithUser struct {
	Like
	User *UserCompact `json:"user"`
}
