package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Context keys set by authMiddleware
const (
	contextKeyAdminEmail = "admin_email"
	contextKeyAdminRole  = "admin_role"
)

// authMiddleware requires an admin bearer token when auth is enabled.
// Requests for which public returns true pass through untouched.
func (s *Server) authMiddleware(public middleware.Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !s.config.Auth.Enabled || (public != nil && public(c)) {
				return next(c)
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := s.authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", c.RealIP(), map[string]interface{}{
					"error":    err.Error(),
					"endpoint": c.Request().URL.Path,
				})
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(contextKeyAdminEmail, claims.Email)
			c.Set(contextKeyAdminRole, claims.Role)

			return next(c)
		}
	}
}

// rateLimiter limits API requests per client IP. A non-positive request
// budget disables limiting.
func (s *Server) rateLimiter() echo.MiddlewareFunc {
	requests := s.config.Security.RateLimitRequests
	window := s.config.Security.RateLimitWindow
	if requests <= 0 || window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(requests) / window.Seconds()),
				Burst:     requests,
				ExpiresIn: window,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Rate limit error")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			s.logger.LogSecurityEvent("rate_limited", identifier, map[string]interface{}{
				"endpoint": c.Request().URL.Path,
			})
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
		},
	})
}

// metricsMiddleware records request counts and latencies by route
func (s *Server) metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method

			s.metrics.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			s.metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
