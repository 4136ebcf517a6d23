// Package router registers the HTTP routes on the Echo instance.
// Unauthenticated operations live under /v1/auth; everything else is
// grouped under /v1 behind the JWT middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ayatok/cinemalog/internal/config"
	"github.com/ayatok/cinemalog/internal/handler"
	"github.com/ayatok/cinemalog/internal/middleware"
)

// Handlers collects the handler set the router wires up.
type Handlers struct {
	Records *handler.RecordHandler
	Catalog *handler.CatalogHandler
	Comment *handler.CommentHandler
	Friend  *handler.FriendHandler
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints: the password flows, the
// OAuth redirect pair, and the authenticated /v1/me profile read.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	// OAuth authorization-code flow. Both legs are unauthenticated; the
	// callback issues the first token pair.
	g.GET("/oauth/login", a.OAuthLogin)
	g.GET("/callback", a.OAuthCallback)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterAPI registers the journal endpoints under /v1 behind the JWT
// middleware. The rate limiter covers the whole group; the response
// cache only wraps the catalog reads, which are append-only and
// tolerate the cache TTL. Record and dashboard reads stay uncached so a
// just-logged record shows up immediately.
func RegisterAPI(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	rl := middleware.RateLimit(rdb, config.LoadRateLimitConfig())
	cache := middleware.ResponseCache(rdb, config.LoadCacheConfig())

	g := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), rl)

	g.GET("/dashboard", h.Records.Dashboard)

	g.GET("/records", h.Records.List)
	g.POST("/records", h.Records.Create)
	g.GET("/records/:id", h.Records.Get)
	g.PUT("/records/:id", h.Records.Update)
	g.DELETE("/records/:id", h.Records.Delete)

	g.GET("/records/:id/comments", h.Comment.List)
	g.POST("/records/:id/comments", h.Comment.Create)

	g.GET("/movies", h.Catalog.ListMovies, cache)
	g.POST("/movies", h.Catalog.CreateMovie)
	g.GET("/places", h.Catalog.ListPlaces, cache)
	g.POST("/places", h.Catalog.CreatePlace)

	g.GET("/friends", h.Friend.List)
	g.POST("/friends", h.Friend.Request)
	g.POST("/friends/:id/respond", h.Friend.Respond)
}
