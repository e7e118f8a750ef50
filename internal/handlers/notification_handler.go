package handlers

import (
	"net/http"
	"strconv"

	"github.com/framez-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler exposes the caller's notification feed.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.GET("/notifications/unread-count", h.UnreadCount)
	g.PUT("/notifications/:id/read", h.MarkRead)
	g.PUT("/notifications/read-all", h.MarkAllRead)
}

// ListNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	notifications, err := h.notificationService.ListForCaller(c.Request().Context(), getCaller(c), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	count, err := h.notificationService.UnreadCount(c.Request().Context(), getCaller(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkRead marks a single notification as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.notificationService.MarkRead(c.Request().Context(), getCaller(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notificationService.MarkAllRead(c.Request().Context(), getCaller(c)); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
