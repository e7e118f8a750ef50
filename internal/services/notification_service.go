package services

import (
	"context"
	"log"

	"github.com/framez-app/backend/internal/identity"
	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/repositories"
	"github.com/framez-app/backend/pkg/errs"
)

// NotificationService records best-effort activity notifications. A nil
// repository disables the feature; Record never fails the mutation that
// triggered it.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Record writes a notification, skipping self-notifications and
// swallowing store errors.
func (s *NotificationService) Record(ctx context.Context, n *models.Notification) {
	if s.notifications == nil {
		return
	}
	if n.ActorID == n.RecipientID {
		return
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		log.Printf("failed to record %s notification for user %d: %v", n.Type, n.RecipientID, err)
	}
}

// ListForCaller returns the caller's notifications, newest first.
func (s *NotificationService) ListForCaller(ctx context.Context, caller identity.Caller, limit int64) ([]models.Notification, error) {
	if !caller.Authenticated() {
		return nil, errs.ErrUnauthenticated
	}
	if s.notifications == nil {
		return []models.Notification{}, nil
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.notifications.GetByRecipientID(ctx, caller.UserID, limit)
}

// UnreadCount counts the caller's unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, caller identity.Caller) (int64, error) {
	if !caller.Authenticated() {
		return 0, errs.ErrUnauthenticated
	}
	if s.notifications == nil {
		return 0, nil
	}
	return s.notifications.GetUnreadCount(ctx, caller.UserID)
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, caller identity.Caller, id string) error {
	if !caller.Authenticated() {
		return errs.ErrUnauthenticated
	}
	if s.notifications == nil {
		return nil
	}
	return s.notifications.MarkAsRead(ctx, id)
}

// MarkAllRead marks every unread notification of the caller as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, caller identity.Caller) error {
	if !caller.Authenticated() {
		return errs.ErrUnauthenticated
	}
	if s.notifications == nil {
		return nil
	}
	return s.notifications.MarkAllAsRead(ctx, caller.UserID)
}
