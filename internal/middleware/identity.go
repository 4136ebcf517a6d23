package middleware

import "github.com/labstack/echo/v4"

// userID returns the authenticated user's ID from the context, or
// "guest" for unauthenticated requests. Used to key per-user state such
// as rate-limit counters and cache entries.
func userID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}
