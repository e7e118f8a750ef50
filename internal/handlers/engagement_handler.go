package handlers

import (
	"fmt"
	"net/http"

	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// EngagementHandler exposes the like/comment-like/follow toggles and
// their existence-check queries.
type EngagementHandler struct {
	engagementService   *services.EngagementService
	postService         *services.PostService
	userService         *services.UserService
	notificationService *services.NotificationService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(
	engagementService *services.EngagementService,
	postService *services.PostService,
	userService *services.UserService,
	notificationService *services.NotificationService,
) *EngagementHandler {
	return &EngagementHandler{
		engagementService:   engagementService,
		postService:         postService,
		userService:         userService,
		notificationService: notificationService,
	}
}

// RegisterEngagementRoutes registers like and follow routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.TogglePostLike)
	g.GET("/posts/:id/like", h.HasLikedPost)
	g.GET("/posts/:id/likes", h.GetPostLikes)
	g.GET("/posts/liked", h.GetLikedPosts)
	g.POST("/comments/:id/like", h.ToggleCommentLike)
	g.GET("/comments/:id/like", h.HasLikedComment)
	g.GET("/comments/liked", h.GetLikedComments)
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.GET("/users/:id/follow", h.IsFollowing)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/stats", h.GetFollowStats)
}

// TogglePostLike likes or unlikes a post; returns the new edge state
func (h *EngagementHandler) TogglePostLike(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	caller := getCaller(c)
	active, err := h.engagementService.TogglePostLike(c.Request().Context(), caller, postID)
	if err != nil {
		return httpError(err)
	}

	if active {
		h.notifyLike(c, caller.UserID, postID)
	}

	return c.JSON(http.StatusOK, echo.Map{"active": active})
}

// HasLikedPost reports whether the caller has liked a post
func (h *EngagementHandler) HasLikedPost(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	liked, err := h.engagementService.HasLikedPost(c.Request().Context(), getCaller(c), postID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"active": liked})
}

// GetPostLikes lists like edges on a post with user snapshots
func (h *EngagementHandler) GetPostLikes(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	likes, err := h.engagementService.GetPostLikes(c.Request().Context(), postID, queryLimit(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, likes)
}

// GetLikedPosts lists the IDs of every post the caller has liked
func (h *EngagementHandler) GetLikedPosts(c echo.Context) error {
	ids, err := h.engagementService.GetLikedPostIDs(c.Request().Context(), getCaller(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ids)
}

// ToggleCommentLike likes or unlikes a comment
func (h *EngagementHandler) ToggleCommentLike(c echo.Context) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	active, err := h.engagementService.ToggleCommentLike(c.Request().Context(), getCaller(c), commentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"active": active})
}

// HasLikedComment reports whether the caller has liked a comment
func (h *EngagementHandler) HasLikedComment(c echo.Context) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	liked, err := h.engagementService.HasLikedComment(c.Request().Context(), getCaller(c), commentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"active": liked})
}

// GetLikedComments lists the IDs of every comment the caller has liked
func (h *EngagementHandler) GetLikedComments(c echo.Context) error {
	ids, err := h.engagementService.GetLikedCommentIDs(c.Request().Context(), getCaller(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ids)
}

// ToggleFollow follows or unfollows a user
func (h *EngagementHandler) ToggleFollow(c echo.Context) error {
	targetID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	caller := getCaller(c)
	active, err := h.engagementService.ToggleFollow(c.Request().Context(), caller, targetID)
	if err != nil {
		return httpError(err)
	}

	if active {
		h.notifyFollow(c, caller.UserID, targetID)
	}

	return c.JSON(http.StatusOK, echo.Map{"active": active})
}

// IsFollowing reports whether the caller follows a user
func (h *EngagementHandler) IsFollowing(c echo.Context) error {
	targetID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	following, err := h.engagementService.IsFollowing(c.Request().Context(), getCaller(c), targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"active": following})
}

// GetFollowers lists followers of a user with profile snapshots
func (h *EngagementHandler) GetFollowers(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	followers, err := h.engagementService.GetFollowers(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists users a user follows
func (h *EngagementHandler) GetFollowing(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	following, err := h.engagementService.GetFollowing(c.Request().Context(), userID, queryLimit(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, following)
}

// GetFollowStats returns a user's denormalized follow counters
func (h *EngagementHandler) GetFollowStats(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.engagementService.GetFollowStats(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *EngagementHandler) notifyLike(c echo.Context, actorID, postID uint) {
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
		Type:        "like",
		ActorID:     actorID,
		RecipientID: post.AuthorID,
		TargetID:    fmt.Sprint(postID),
		TargetType:  "post",
		Message:     actor.Name + " liked your post",
	})
}

func (h *EngagementHandler) notifyFollow(c echo.Context, actorID, targetID uint) {
	ctx := c.Request().Context()
	actor, err := h.userService.GetByID(ctx, actorID)
	if err != nil {
		return
	}
	h.notificationService.Record(ctx, &models.Notification{
		Type:        "follow",
		ActorID:     actorID,
		RecipientID: targetID,
		TargetID:    fmt.Sprint(actorID),
		TargetType:  "user",
		Message:     actor.Name + " started following you",
	})
}
