package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a profile record in the user directory. FollowersCount and
// FollowingCount are denormalized from the follows table and only ever
// move through the engagement toggle path.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Handle         string    `json:"handle" gorm:"uniqueIndex"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Password       string    `json:"-"` // bcrypt hash, empty for external-identity users
	FirebaseUID    string    `json:"-" gorm:"index"`
	FollowersCount int       `json:"followers_count" gorm:"not null;default:0"`
	FollowingCount int       `json:"following_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserCompact is the public author snapshot attached to posts, comments
// and likes.
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserProfile is the richer snapshot used in follower/following listings.
type UserProfile struct {
	UserCompact
	Bio            string `json:"bio,omitempty"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		Handle:    u.Handle,
		AvatarURL: u.AvatarURL,
	}
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		UserCompact:    u.ToCompact(),
		Bio:            u.Bio,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}

// FollowStats mirrors the denormalized follow counters of one user.
type FollowStats struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
}

// Availability is the result of a handle/email availability probe. The
// probe is advisory only; the commit-time uniqueness check is the guarantee.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// SignupRequest is the request body for local email/password registration.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Handle   string `json:"handle" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest is the request body for local email/password login.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest carries a Firebase ID token to exchange for a local JWT.
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpsertProfileRequest is the request body for creating or updating the
// caller's profile.
type UpsertProfileRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=50"`
	Handle    string `json:"handle" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=160"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
