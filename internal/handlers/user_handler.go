package handlers

import (
	"net/http"

	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetMe)
	g.PUT("/me", h.UpsertProfile)
	g.GET("/users/check-handle", h.CheckHandle)
	g.GET("/users/check-email", h.CheckEmail)
	g.GET("/users/handle/:handle", h.GetUserByHandle)
	g.GET("/users/:id", h.GetUser)
}

// GetMe retrieves the authenticated caller's own profile
func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userService.GetCurrent(c.Request().Context(), getCaller(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpsertProfile creates or updates the caller's profile
func (h *UserHandler) UpsertProfile(c echo.Context) error {
	var req models.UpsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.CreateOrUpdateProfile(c.Request().Context(), getCaller(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser retrieves another user's profile by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUserByHandle retrieves a profile by exact handle
func (h *UserHandler) GetUserByHandle(c echo.Context) error {
	user, err := h.userService.GetByHandle(c.Request().Context(), c.Param("handle"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// CheckHandle is the advisory handle availability probe
func (h *UserHandler) CheckHandle(c echo.Context) error {
	availability, err := h.userService.CheckHandleAvailable(c.Request().Context(), c.QueryParam("handle"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, availability)
}

// CheckEmail is the advisory email availability probe
func (h *UserHandler) CheckEmail(c echo.Context) error {
	availability, err := h.userService.CheckEmailAvailable(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, availability)
}
