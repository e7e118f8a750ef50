package handlers

import (
	"net/http"
	"strconv"

	"github.com/framez-app/backend/internal/identity"
	"github.com/framez-app/backend/internal/middleware"
	"github.com/framez-app/backend/internal/models"
	"github.com/framez-app/backend/pkg/errs"
	"github.com/labstack/echo/v4"
)

// getCaller extracts the authenticated caller from the JWT claims the
// auth middleware stored on the context. Routes outside the protected
// group yield the anonymous caller.
func getCaller(c echo.Context) identity.Caller {
	claims, ok := c.Get(middleware.ClaimsContextKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return identity.Anonymous
	}
	return identity.Caller{UserID: claims.UserID}
}

// httpError maps service errors to echo HTTP errors.
func httpError(err error) error {
	return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// queryLimit parses the optional ?limit= query parameter.
func queryLimit(c echo.Context) int {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return limit
}
