package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/framez-app/backend/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestHttpErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errs.ErrUnauthenticated, http.StatusUnauthorized},
		{errs.ErrForbidden, http.StatusForbidden},
		{errs.ErrPostNotFound, http.StatusNotFound},
		{errs.ErrHandleTaken, http.StatusConflict},
		{errs.ErrSelfFollow, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		var he *echo.HTTPError
		require.ErrorAs(t, httpError(tc.err), &he)
		require.Equal(t, tc.status, he.Code)
		require.Equal(t, tc.err.Error(), he.Message)
	}
}
