package services

import (
	"context"
	"errors"

	"github.com/framez-app/backend/internal/identity"
	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/repositories"
	"github.com/framez-app/backend/pkg/errs"
	"gorm.io/gorm"
)

// edgeDescriptor parameterizes the shared toggle algorithm over one
// edge table and the counter(s) it keeps in sync. Post likes, comment
// likes and follows all run through the same code path; follows move a
// second counter on the actor's side.
type edgeDescriptor struct {
	exists    func(tx *gorm.DB) (bool, error)
	insert    func(tx *gorm.DB) error
	remove    func(tx *gorm.DB) error
	increment func(tx *gorm.DB) error
	decrement func(tx *gorm.DB) error
}

// EngagementService maintains toggle state between an actor and a target
// and keeps the target's denormalized counter in sync. Edge write and
// counter adjustment always happen inside one transaction.
type EngagementService struct {
	db           *gorm.DB
	users        repositories.UserRepository
	posts        repositories.PostRepository
	comments     repositories.CommentRepository
	likes        repositories.LikeRepository
	commentLikes repositories.CommentLikeRepository
	follows      repositories.FollowRepository
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	db *gorm.DB,
	users repositories.UserRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	likes repositories.LikeRepository,
	commentLikes repositories.CommentLikeRepository,
	follows repositories.FollowRepository,
) *EngagementService {
	return &EngagementService{
		db:           db,
		users:        users,
		posts:        posts,
		comments:     comments,
		likes:        likes,
		commentLikes: commentLikes,
		follows:      follows,
	}
}

// toggle flips the edge for one actor/target pair. If the edge exists it
// is removed and the counter decremented (floored at zero); otherwise it
// is inserted and the counter incremented. Returns the new edge state.
func (s *EngagementService) toggle(ctx context.Context, caller identity.Caller, desc edgeDescriptor) (bool, error) {
	if !caller.Authenticated() {
		return false, errs.ErrUnauthenticated
	}

	active := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := desc.exists(tx)
		if err != nil {
			return err
		}
		if found {
			if err := desc.remove(tx); err != nil {
				return err
			}
			return desc.decrement(tx)
		}
		if err := desc.insert(tx); err != nil {
			return err
		}
		active = true
		return desc.increment(tx)
	})
	return active, err
}

// TogglePostLike likes or unlikes a post for the caller. Returns the new
// state: true means the like edge now exists.
func (s *EngagementService) TogglePostLike(ctx context.Context, caller identity.Caller, postID uint) (bool, error) {
	if !caller.Authenticated() {
		return false, errs.ErrUnauthenticated
	}
	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrPostNotFound
		}
		return false, err
	}

	return s.toggle(ctx, caller, edgeDescriptor{
		exists: func(tx *gorm.DB) (bool, error) {
			return s.likes.WithTx(tx).HasUserLikedPost(postID, caller.UserID)
		},
		insert: func(tx *gorm.DB) error {
			return s.likes.WithTx(tx).CreateLike(&models.Like{PostID: postID, UserID: caller.UserID})
		},
		remove: func(tx *gorm.DB) error {
			return s.likes.WithTx(tx).DeleteLike(postID, caller.UserID)
		},
		increment: func(tx *gorm.DB) error {
			return s.posts.WithTx(tx).IncrementLikesCount(postID)
		},
		decrement: func(tx *gorm.DB) error {
			return s.posts.WithTx(tx).DecrementLikesCount(postID)
		},
	})
}

// ToggleCommentLike likes or unlikes a comment for the caller.
func (s *EngagementService) ToggleCommentLike(ctx context.Context, caller identity.Caller, commentID uint) (bool, error) {
	if !caller.Authenticated() {
		return false, errs.ErrUnauthenticated
	}
	if _, err := s.comments.GetCommentByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrCommentNotFound
		}
		return false, err
	}

	return s.toggle(ctx, caller, edgeDescriptor{
		exists: func(tx *gorm.DB) (bool, error) {
			return s.commentLikes.WithTx(tx).HasUserLikedComment(commentID, caller.UserID)
		},
		insert: func(tx *gorm.DB) error {
			return s.commentLikes.WithTx(tx).CreateCommentLike(&models.CommentLike{CommentID: commentID, UserID: caller.UserID})
		},
		remove: func(tx *gorm.DB) error {
			return s.commentLikes.WithTx(tx).DeleteCommentLike(commentID, caller.UserID)
		},
		increment: func(tx *gorm.DB) error {
			return s.comments.WithTx(tx).IncrementLikesCount(commentID)
		},
		decrement: func(tx *gorm.DB) error {
			return s.comments.WithTx(tx).DecrementLikesCount(commentID)
		},
	})
}

// ToggleFollow follows or unfollows a user for the caller. Two counters
// move per toggle: the target's followers count and the caller's
// following count, in the same direction, in the same transaction.
func (s *EngagementService) ToggleFollow(ctx context.Context, caller identity.Caller, targetID uint) (bool, error) {
	if !caller.Authenticated() {
		return false, errs.ErrUnauthenticated
	}
	if caller.UserID == targetID {
		return false, errs.ErrSelfFollow
	}
	if _, err := s.users.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrUserNotFound
		}
		return false, err
	}

	return s.toggle(ctx, caller, edgeDescriptor{
		exists: func(tx *gorm.DB) (bool, error) {
			return s.follows.WithTx(tx).IsFollowing(caller.UserID, targetID)
		},
		insert: func(tx *gorm.DB) error {
			return s.follows.WithTx(tx).CreateFollow(&models.Follow{FollowerID: caller.UserID, FollowingID: targetID})
		},
		remove: func(tx *gorm.DB) error {
			return s.follows.WithTx(tx).DeleteFollow(caller.UserID, targetID)
		},
		increment: func(tx *gorm.DB) error {
			users := s.users.WithTx(tx)
			if err := users.IncrementFollowersCount(targetID); err != nil {
				return err
			}
			return users.IncrementFollowingCount(caller.UserID)
		},
		decrement: func(tx *gorm.DB) error {
			users := s.users.WithTx(tx)
			if err := users.DecrementFollowersCount(targetID); err != nil {
				return err
			}
			return users.DecrementFollowingCount(caller.UserID)
		},
	})
}

// HasLikedPost reports whether the caller has liked a post. Unauthenticated
// callers get false, not an error.
func (s *EngagementService) HasLikedPost(ctx context.Context, caller identity.Caller, postID uint) (bool, error) {
	if !caller.Authenticated() {
		return false, nil
	}
	return s.likes.HasUserLikedPost(postID, caller.UserID)
}

// HasLikedComment reports whether the caller has liked a comment.
func (s *EngagementService) HasLikedComment(ctx context.Context, caller identity.Caller, commentID uint) (bool, error) {
	if !caller.Authenticated() {
		return false, nil
	}
	return s.commentLikes.HasUserLikedComment(commentID, caller.UserID)
}

// IsFollowing reports whether the caller follows a user.
func (s *EngagementService) IsFollowing(ctx context.Context, caller identity.Caller, targetID uint) (bool, error) {
	if !caller.Authenticated() {
		return false, nil
	}
	return s.follows.IsFollowing(caller.UserID, targetID)
}

// GetPostLikes returns up to limit like edges on a post, each enriched
// with the liking user's snapshot. A missing user yields a null snapshot.
func (s *EngagementService) GetPostLikes(ctx context.Context, postID uint, limit int) ([]models.LikeWithUser, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	likes, err := s.likes.GetLikesByPostID(postID, limit)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.LikeWithUser, 0, len(likes))
	for _, like := range likes {
		var snapshot *models.UserCompact
		if user, err := s.users.GetUserByID(like.UserID); err == nil {
			compact := user.ToCompact()
			snapshot = &compact
		}
		enriched = append(enriched, models.LikeWithUser{Like: like, User: snapshot})
	}
	return enriched, nil
}

// GetLikedPostIDs lists the IDs of every post the caller has liked.
// Unauthenticated callers get an empty list.
func (s *EngagementService) GetLikedPostIDs(ctx context.Context, caller identity.Caller) ([]uint, error) {
	if !caller.Authenticated() {
		return []uint{}, nil
	}
	return s.likes.GetLikedPostIDs(caller.UserID)
}

// GetLikedCommentIDs lists the IDs of every comment the caller has liked.
func (s *EngagementService) GetLikedCommentIDs(ctx context.Context, caller identity.Caller) ([]uint, error) {
	if !caller.Authenticated() {
		return []uint{}, nil
	}
	return s.commentLikes.GetLikedCommentIDs(caller.UserID)
}

// GetFollowers returns up to limit profile snapshots of users following userID.
func (s *EngagementService) GetFollowers(ctx context.Context, userID uint, limit int) ([]models.UserProfile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	users, err := s.follows.GetFollowers(userID, limit)
	if err != nil {
		return nil, err
	}
	return toProfiles(users), nil
}

// GetFollowing returns up to limit profile snapshots of users userID follows.
func (s *EngagementService) GetFollowing(ctx context.Context, userID uint, limit int) ([]models.UserProfile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	users, err := s.follows.GetFollowing(userID, limit)
	if err != nil {
		return nil, err
	}
	return toProfiles(users), nil
}

// GetFollowStats returns the denormalized follow counters of a user.
// A missing user yields zero counters rather than an error.
func (s *EngagementService) GetFollowStats(ctx context.Context, userID uint) (models.FollowStats, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.FollowStats{}, nil
		}
		return models.FollowStats{}, err
	}
	return models.FollowStats{
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
	}, nil
}

func toProfiles(users []models.User) []models.UserProfile {
	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}
	return profiles
}
