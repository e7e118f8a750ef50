package services

import (
	"context"
	"errors"
	"time"

	"github.com/framez-app/backend/internal/identity"
	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/repositories"
	"github.com/framez-app/backend/pkg/errs"
	"gorm.io/gorm"
)

const (
	// Bounded retry for reading a profile that was created moments ago
	// and may not be visible yet.
	retryAttempts = 3
	retryDelay    = 150 * time.Millisecond

	minHandleLength = 3
)

// UserService implements user directory operations.
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetCurrent returns the caller's own profile, or nil for an
// unauthenticated caller.
func (s *UserService) GetCurrent(ctx context.Context, caller identity.Caller) (*models.User, error) {
	if !caller.Authenticated() {
		return nil, nil
	}
	user, err := s.users.GetUserByID(caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByID is a public profile lookup.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByHandle is a public profile lookup by exact, case-sensitive handle.
func (s *UserService) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	user, err := s.users.GetUserByHandle(handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByIDWithRetry reads a profile with a small bounded retry, absorbing
// replication lag on records created moments earlier at the identity
// provider boundary.
func (s *UserService) GetByIDWithRetry(ctx context.Context, id uint) (*models.User, error) {
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
		user, err := s.users.GetUserByID(id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, errs.ErrUserNotFound
}

// CreateOrUpdateProfile updates the caller's profile, enforcing handle
// and email uniqueness at commit time. Counters are initialized to zero
// on first creation and preserved on update.
func (s *UserService) CreateOrUpdateProfile(ctx context.Context, caller identity.Caller, req models.UpsertProfileRequest) (*models.User, error) {
	if !caller.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}

	if existing, err := s.users.GetUserByHandle(req.Handle); err == nil && existing.ID != caller.UserID {
		return nil, errs.ErrHandleTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing, err := s.users.GetUserByEmail(req.Email); err == nil && existing.ID != caller.UserID {
		return nil, errs.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.users.GetUserByID(caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}

	user.Name = req.Name
	user.Handle = req.Handle
	user.Email = req.Email
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	// Follower counters stay untouched; they belong to the follow toggle path.
	if err := s.users.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CheckHandleAvailable is an advisory availability probe with no side
// effects. It does not reserve the handle; the commit-time uniqueness
// check in CreateOrUpdateProfile is the real guarantee.
func (s *UserService) CheckHandleAvailable(ctx context.Context, handle string) (models.Availability, error) {
	if len(handle) < minHandleLength {
		return models.Availability{Available: false, Message: "Handle must be at least 3 characters"}, nil
	}
	_, err := s.users.GetUserByHandle(handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Availability{Available: true, Message: "Handle available"}, nil
		}
		return models.Availability{}, err
	}
	return models.Availability{Available: false, Message: "Handle already taken"}, nil
}

// CheckEmailAvailable is the email counterpart of CheckHandleAvailable.
func (s *UserService) CheckEmailAvailable(ctx context.Context, email string) (models.Availability, error) {
	_, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Availability{Available: true, Message: "Email available"}, nil
		}
		return models.Availability{}, err
	}
	return models.Availability{Available: false, Message: "Email already registered"}, nil
}
