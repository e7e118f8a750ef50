package handlers

import (
	"net/http"

	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id/caption", h.UpdateCaption)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetPostsByAuthor)
}

// CreatePost creates a new post for the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), getCaller(c), req.Caption, req.ImageURL)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetFeed returns the most recent posts, newest first, with author snapshots
func (h *PostHandler) GetFeed(c echo.Context) error {
	posts, err := h.postService.Feed(c.Request().Context(), queryLimit(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post with its author snapshot
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postService.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPostsByAuthor returns all posts authored by one user, newest first
func (h *PostHandler) GetPostsByAuthor(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	posts, err := h.postService.ListByAuthor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdateCaption edits a post's caption; author only
func (h *PostHandler) UpdateCaption(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCaptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postService.UpdateCaption(c.Request().Context(), getCaller(c), id, req.Caption); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost removes a post and everything referencing it; author only
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), getCaller(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
