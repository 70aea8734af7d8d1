// Package server is the JSON surface the presentation layer talks to.
// It holds no logic of its own: every handler parses input, calls the
// listing service or a backend client, and renders the result.
package server

import (
	"context"
	stderrors "errors"

	"github.com/Soubhagyabehera/easyapply/internal/api"
	"github.com/Soubhagyabehera/easyapply/internal/config"
	"github.com/Soubhagyabehera/easyapply/internal/docs"
	"github.com/Soubhagyabehera/easyapply/internal/errors"
	"github.com/Soubhagyabehera/easyapply/internal/events"
	"github.com/Soubhagyabehera/easyapply/internal/listing"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

type Server struct {
	app     *fiber.App
	logger  *zap.Logger
	config  *config.Config
	listing *listing.Service
	jobs    api.Client
	tools   *docs.ToolsClient
	events  events.Publisher
}

func New(logger *zap.Logger, cfg *config.Config, svc *listing.Service, jobs api.Client, tools *docs.ToolsClient, publisher events.Publisher) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // document uploads pass through here
	})
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		logger:  logger,
		config:  cfg,
		listing: svc,
		jobs:    jobs,
		tools:   tools,
		events:  publisher,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	apiGroup := s.app.Group("/api")

	apiGroup.Get("/jobs", s.handleListJobs)
	apiGroup.Post("/jobs/refresh", s.handleRefresh)
	apiGroup.Post("/jobs/reveal", s.handleReveal)
	apiGroup.Post("/jobs/manual", s.handleCreateManual)
	apiGroup.Get("/jobs/:id", s.handleGetJob)

	apiGroup.Put("/filters", s.handleSetFilters)
	apiGroup.Put("/sort", s.handleSetSort)
	apiGroup.Get("/categories", s.handleCategories)

	apiGroup.Post("/tools/:tool", s.handleTool)
}

func (s *Server) Listen() error {
	return s.app.Listen(s.config.ListenAddr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the router for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// statusFor maps the error taxonomy onto HTTP statuses. Anything that
// is not a DomainError is a programming error and surfaces as 500.
func statusFor(err error) int {
	var domainErr *errors.DomainError
	if !stderrors.As(err, &domainErr) {
		return fiber.StatusInternalServerError
	}
	switch domainErr.Type {
	case errors.ErrTypeNotFound:
		return fiber.StatusNotFound
	case errors.ErrTypeInvalidInput:
		return fiber.StatusBadRequest
	case errors.ErrTypeUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) renderError(c *fiber.Ctx, err error) error {
	s.logger.Error("request failed",
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"status":  "error",
		"message": err.Error(),
	})
}
