package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ayatok/cinemalog/internal/config"
)

// captureWriter duplicates the response body while forwarding it to the
// client, so a successful response can be stored after it is sent.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// cacheKey builds a per-user key from the route and raw query. Journal
// pages are private, so responses for one user must never be served to
// another; the user ID is part of the hashed material.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	material := fmt.Sprintf("%s:%s:%s", userID(c), c.Path(), r.URL.RawQuery)
	sum := sha1.Sum([]byte(material))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// ResponseCache caches successful GET responses in Redis for cfg.TTL.
// Only status 200 bodies are stored. Redis errors fall through to the
// handler, so a cache outage degrades to uncached responses.
//
// Entries are not invalidated on writes: a cached read can lag a
// mutation by up to cfg.TTL. Wrap only endpoints that tolerate that
// staleness window and keep the TTL short.
func ResponseCache(rdb *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Enabled || rdb == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := cacheKey(cfg, c)
			ctx, cancel := context.WithTimeout(c.Request().Context(), 150*time.Millisecond)
			cached, err := rdb.Get(ctx, key).Bytes()
			cancel()
			if err == nil {
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, cached)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
				_ = rdb.Set(ctx, key, cw.buf.Bytes(), cfg.TTL).Err()
				cancel()
			}
			return nil
		}
	}
}
