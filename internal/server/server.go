package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/slangify/internal/boundary"
	"codeberg.org/snonux/slangify/internal/prompt"
)

// BodyLimit caps request bodies.
const BodyLimit = 2 * 1024 * 1024

const requestIDKey = "requestid"

// Config holds the HTTP server settings.
type Config struct {
	Address         string
	ShutdownTimeout time.Duration
	AllowOrigins    string
}

// DefaultConfig returns the default server settings.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":9002",
		ShutdownTimeout: 10 * time.Second,
		AllowOrigins:    "*",
	}
}

// Server is the JSON API.
type Server struct {
	app    *fiber.App
	config *Config
	logger *zap.Logger
}

// New wires routes and middleware.
func New(b *boundary.Boundary, config *Config, logger *zap.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "slangify",
		ErrorHandler:          ErrorHandler,
		BodyLimit:             BodyLimit,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(requestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	setupRoutes(app, NewHandler(b))

	return &Server{app: app, config: config, logger: logger}
}

func setupRoutes(app *fiber.App, h *Handler) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api/v1")
	api.Get("/districts", h.Districts)
	for _, c := range prompt.Capabilities() {
		api.Post("/"+string(c), h.Capability(c))
	}
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", zap.String("address", s.config.Address))
		if err := s.app.Listen(s.config.Address); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		if err := s.app.ShutdownWithTimeout(s.config.ShutdownTimeout); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// requestLogger logs one line per request through zap. Chain errors are
// rendered here so the logged status is the one sent.
func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
		}
		if id, ok := c.Locals(requestIDKey).(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
		return nil
	}
}
