package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/habitboard/core/internal/adapters/http"
	"github.com/habitboard/core/internal/adapters/repository"
	"github.com/habitboard/core/internal/application/services"
	"github.com/habitboard/core/internal/infrastructure/config"
	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/infrastructure/storage"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	store  storage.Store
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, store storage.Store, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger, cfg.App.IsProduction())

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	boardRepo := repository.NewBoardRepository(store)
	logRepo := repository.NewLogRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT, appLogger)
	boardService := services.NewBoardService(boardRepo, logRepo, notificationRepo, appLogger)
	logService := services.NewLogService(logRepo, boardRepo, appLogger)
	notificationService := services.NewNotificationService(notificationRepo, boardRepo, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	boardHandler := httpHandlers.NewBoardHandler(boardService, appLogger)
	logHandler := httpHandlers.NewLogHandler(logService, appLogger)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		store:  store,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(authHandler, boardHandler, logHandler, notificationHandler, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, httpHandlers.ErrorEnvelope("rate limit exceeded"))
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Per-request deadline; handlers that outlive it surface as 504
	s.echo.Use(s.timeoutMiddleware(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, boardHandler *httpHandlers.BoardHandler, logHandler *httpHandlers.LogHandler, notificationHandler *httpHandlers.NotificationHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	api := s.echo.Group("/api")
	auth := s.authMiddleware(authService)

	// Auth routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/me", authHandler.Me, auth)
	api.POST("/logout", authHandler.Logout, auth)

	// Board routes
	api.GET("/boards", boardHandler.List, auth)
	api.POST("/boards", boardHandler.Create, auth)
	api.GET("/boards/:id", boardHandler.Get, auth)
	api.PUT("/boards/:id", boardHandler.Update, auth)
	api.DELETE("/boards/:id", boardHandler.Delete, auth)

	// Anonymous read access to public boards
	api.GET("/public/:boardId", boardHandler.GetPublic)

	// Log routes
	api.GET("/logs/:boardId", logHandler.List, auth)
	api.GET("/logs/:boardId/:date", logHandler.GetByDate, auth)
	api.POST("/logs", logHandler.Create, auth)
	api.DELETE("/logs/:id", logHandler.Delete, auth)

	// Notification routes
	api.GET("/notify/:boardId", notificationHandler.List, auth)
	api.POST("/notify", notificationHandler.Create, auth)
	api.PATCH("/notify/:id/dismiss", notificationHandler.Dismiss, auth)
	api.DELETE("/notify/:id", notificationHandler.Delete, auth)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "store_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error in the error envelope.
func customErrorHandler(logger *logger.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		switch e := err.(type) {
		case *echo.HTTPError:
			code = e.Code
			if m, ok := e.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
			if e.Internal != nil {
				err = fmt.Errorf("%v, %v", err, e.Internal)
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = e.Error()
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
			if production {
				message = http.StatusText(code)
			}
		}

		// Send response
		if !c.Response().Committed {
			var writeErr error
			if c.Request().Method == echo.HEAD {
				writeErr = c.NoContent(code)
			} else {
				writeErr = c.JSON(code, httpHandlers.ErrorEnvelope(message))
			}
			if writeErr != nil {
				logger.Error("Error sending response", "error", writeErr)
			}
		}
	}
}
