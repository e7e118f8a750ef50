package handlers

import (
	"fmt"
	"net/http"

	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService      *services.CommentService
	postService         *services.PostService
	userService         *services.UserService
	notificationService *services.NotificationService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentService *services.CommentService,
	postService *services.PostService,
	userService *services.UserService,
	notificationService *services.NotificationService,
) *CommentHandler {
	return &CommentHandler{
		commentService:      commentService,
		postService:         postService,
		userService:         userService,
		notificationService: notificationService,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsByPost)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	caller := getCaller(c)
	comment, err := h.commentService.Create(c.Request().Context(), caller, postID, req.Text)
	if err != nil {
		return httpError(err)
	}

	h.notifyPostAuthor(c, caller.UserID, postID, comment.ID)

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPost retrieves all comments for a post, newest first
func (h *CommentHandler) GetCommentsByPost(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment deletes a comment; author only
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Request().Context(), getCaller(c), commentID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// notifyPostAuthor records a best-effort comment notification for the
// post's author.
func (h *CommentHandler) notifyPostAuthor(c echo.Context, actorID, postID, commentID uint) {
	ctx := c.Request().Context()
	post, err := h.postService.GetByID(ctx, postID)
	if err != nil {
		return
	}
	actor, err := h.userService.GetByID(ctx, actorID)
	if err != nil {
		return
	}
	h.notificationService.Record(ctx, &models.Notification{
		Type:        "comment",
		ActorID:     actorID,
		RecipientID: post.AuthorID,
		TargetID:    fmt.Sprint(commentID),
		TargetType:  "comment",
		Message:     actor.Name + " commented on your post",
	})
}
