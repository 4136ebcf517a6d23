package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayatok/cinemalog/internal/apperror"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetUserIDMissingIsJSONUnauthorized(t *testing.T) {
	c, rec := newTestContext(t)

	_, err := getUserID(c)
	require.ErrorIs(t, err, apperror.ErrAuth)

	require.NoError(t, respondError(c, err))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
}

func TestGetUserIDPresent(t *testing.T) {
	c, _ := newTestContext(t)
	c.Set("user_id", "alice")

	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, "alice", id)
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", apperror.Validation("rating", "rating must be between 1 and 10"), http.StatusBadRequest, `{"error":"rating must be between 1 and 10"}`},
		{"not found", apperror.NotFound("record"), http.StatusNotFound, `{"error":"record not found"}`},
		{"auth", apperror.Auth("invalid credentials"), http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"upstream hides detail", apperror.Upstream("listing records", errors.New("dial tcp: refused")), http.StatusInternalServerError, `{"error":"internal error"}`},
		{"unknown hides detail", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, respondError(c, tc.err))
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}
