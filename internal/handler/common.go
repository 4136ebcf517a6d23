// Package handler contains the Echo HTTP handlers. Handlers parse and
// bind requests, call into the service layer, and translate application
// errors to HTTP status codes; they hold no business rules themselves.
package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ayatok/cinemalog/internal/apperror"
)

// getUserID reads the authenticated user ID that the JWT middleware
// stored in the context. The error maps to a 401 with the same JSON
// shape as every other error response.
func getUserID(c echo.Context) (string, error) {
	id, ok := c.Get("user_id").(string)
	if !ok || id == "" {
		return "", apperror.Auth("authentication required")
	}
	return id, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation(name, "must be a positive integer")
	}
	return id, nil
}

// respondError maps application errors to HTTP responses. Unrecognized
// errors become a generic 500 so internal details never leak to
// clients.
func respondError(c echo.Context, err error) error {
	var appErr *apperror.AppError
	msg := err.Error()
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	switch {
	case errors.Is(err, apperror.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	case errors.Is(err, apperror.ErrAuth):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
	case errors.Is(err, apperror.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
	default:
		log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
