package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/unimedia/agencysite/docs"
	httpHandlers "github.com/unimedia/agencysite/internal/adapters/http"
	"github.com/unimedia/agencysite/internal/adapters/repository"
	"github.com/unimedia/agencysite/internal/adapters/storage"
	"github.com/unimedia/agencysite/internal/application/services"
	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/config"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/infrastructure/metrics"
	"github.com/unimedia/agencysite/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo        *echo.Echo
	config      *config.Config
	logger      *logger.Logger
	metrics     *metrics.Metrics
	records     *repository.RecordRepositoryImpl
	images      *storage.ImageStorageImpl
	authService *services.AuthService
}

// New creates a new server instance
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger, cfg.App.Debug)

	if cfg.App.IsProduction() && !cfg.Auth.Enabled {
		appLogger.Warnw("Admin authentication is disabled in production, every write route is open",
			"environment", cfg.App.Environment)
	}

	// Initialize storage
	recordRepo := repository.NewRecordRepository(cfg.Storage.DataDir, appLogger)
	settingsRepo := repository.NewSettingsRepository(cfg.Storage.DataDir, appLogger)
	imageStorage := storage.NewImageStorage(cfg.Storage.PublicDir, appLogger)
	if err := imageStorage.EnsureFolders(); err != nil {
		return nil, fmt.Errorf("failed to prepare image folders: %w", err)
	}

	var appMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		appMetrics = metrics.New()
	}

	// Initialize services
	validate := services.NewValidator()
	recordService := services.NewRecordService(recordRepo, validate, appMetrics, appLogger)
	uploadService := services.NewUploadService(imageStorage, appMetrics, appLogger)
	settingsService := services.NewSettingsService(settingsRepo, recordRepo, validate, appLogger)
	authService := services.NewAuthService(cfg.Auth, validate, appLogger)

	// Initialize handlers
	recordHandler := httpHandlers.NewRecordHandler(recordService, appLogger)
	uploadHandler := httpHandlers.NewUploadHandler(uploadService, appLogger)
	settingsHandler := httpHandlers.NewSettingsHandler(settingsService, appLogger)
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)

	server := &Server{
		echo:        e,
		config:      cfg,
		logger:      appLogger,
		metrics:     appMetrics,
		records:     recordRepo,
		images:      imageStorage,
		authService: authService,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(recordHandler, uploadHandler, settingsHandler, authHandler)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID middleware
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			latency := float64(values.Latency.Nanoseconds()) / 1000000
			if values.Error != nil {
				s.logger.WithRequestID(values.RequestID).Errorw("HTTP request failed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
					"latency_ms", latency,
					"remote_ip", values.RemoteIP,
					"error", values.Error.Error(),
				)
				return nil
			}

			s.logger.WithRequestID(values.RequestID).LogHTTPRequest(
				values.Method, values.URI, values.UserAgent, values.RemoteIP, values.Status, latency)
			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))

	if s.metrics != nil {
		s.echo.Use(s.metricsMiddleware())
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(recordHandler *httpHandlers.RecordHandler, uploadHandler *httpHandlers.UploadHandler, settingsHandler *httpHandlers.SettingsHandler, authHandler *httpHandlers.AuthHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	// Uploaded images
	s.echo.Static("/images", s.images.Root())

	api := s.echo.Group("/api", s.rateLimiter())

	// Auth routes (public)
	api.POST("/auth/login", authHandler.Login)

	// Settings routes
	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.UpdateSettings, s.authMiddleware(nil))

	// Upload routes
	api.POST("/upload/:type", uploadHandler.UploadImage, s.authMiddleware(nil))
	api.POST("/upload", uploadHandler.UploadImage, s.authMiddleware(nil))

	// Collection routes. Everything but the contact inbox is readable by
	// anyone, and visitors may submit contact messages.
	api.GET("/:type", recordHandler.ListRecords, s.authMiddleware(func(c echo.Context) bool {
		return c.Param("type") != entities.EntityTypeContact.String()
	}))
	api.POST("/:type", recordHandler.CreateRecord, s.authMiddleware(func(c echo.Context) bool {
		return c.Param("type") == entities.EntityTypeContact.String()
	}))
	api.PUT("/:type/:id", recordHandler.UpdateRecord, s.authMiddleware(nil))
	api.DELETE("/:type/:id", recordHandler.DeleteRecord, s.authMiddleware(nil))

	// Built site, with index.html served for client side routes
	if s.config.Server.StaticDir != "" {
		s.echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:    s.config.Server.StaticDir,
			HTML5:   true,
			Skipper: isBackendPath,
		}))
	}
}

// isBackendPath reports whether a request belongs to the API rather than the built site
func isBackendPath(c echo.Context) bool {
	p := c.Request().URL.Path
	for _, prefix := range []string{"/api", "/images", "/swagger", "/metrics", "/health", "/ready"} {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	for name, check := range map[string]func() error{
		"data":   s.records.Writable,
		"images": s.images.Writable,
	} {
		if err := check(); err != nil {
			status = "error"
			checks[name] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
			continue
		}
		checks[name] = map[string]interface{}{"status": "ok"}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.records.Writable(); err != nil {
		s.logger.WithError(err).Warn("Data directory not writable")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "data_dir_not_writable",
		})
	}

	if err := s.images.Writable(); err != nil {
		s.logger.WithError(err).Warn("Image directory not writable")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "images_dir_not_writable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	address := s.config.Server.Addr()
	s.logger.Infow("Starting server",
		"address", address,
		"data_dir", s.config.Storage.DataDir,
		"public_dir", s.config.Storage.PublicDir,
		"auth_enabled", s.config.Auth.Enabled,
	)

	err := s.echo.Start(address)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error as {"error": "..."}. In debug mode the
// cause of a 500 is added as details.
func customErrorHandler(logger *logger.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			body = ports.ErrorResponse{Error: "Internal server error"}
		)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			switch msg := he.Message.(type) {
			case string:
				body = ports.ErrorResponse{Error: msg}
			case ports.ErrorResponse:
				body = msg
			case *ports.ErrorResponse:
				body = *msg
			case error:
				body = ports.ErrorResponse{Error: msg.Error()}
			default:
				body = ports.ErrorResponse{Error: fmt.Sprint(msg)}
			}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		}

		if code == http.StatusInternalServerError {
			logger.WithError(err).Errorw("Internal server error", "path", c.Request().URL.Path)
			if debug && body.Details == "" {
				body.Details = err.Error()
			}
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, body)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
