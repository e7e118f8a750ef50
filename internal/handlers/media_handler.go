package handlers

import (
	"net/http"

	"github.com/framez-app/backend/pkg/errs"
	"github.com/framez-app/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// MediaHandler accepts media uploads and returns durable URLs. Posts and
// profiles only ever reference URLs produced here.
type MediaHandler struct {
	storage *storage.Service
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(storage *storage.Service) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// RegisterMediaRoutes registers media upload routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// Upload stores one image and returns its URL
func (h *MediaHandler) Upload(c echo.Context) error {
	if !getCaller(c).Authenticated() {
		return httpError(errs.ErrUnauthenticated)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}

	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
	}
	defer file.Close()

	url, err := h.storage.Upload(file, header)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
