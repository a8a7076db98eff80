// Package server exposes the normalization pipeline and document store over
// HTTP.
package server

import (
	"database/sql"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shirakawa-dev/denpyo/internal/common"
	"github.com/shirakawa-dev/denpyo/internal/export"
	"github.com/shirakawa-dev/denpyo/internal/pipeline"
	"github.com/shirakawa-dev/denpyo/internal/repository"
)

type Server struct {
	app      *fiber.App
	cfg      common.ServerConfig
	pipe     *pipeline.Pipeline
	docsRepo repository.DocumentRepository
	exporter *export.Service
	db       *sql.DB
	metrics  *Metrics
	logger   *slog.Logger
}

func New(
	cfg common.ServerConfig,
	pipe *pipeline.Pipeline,
	docs repository.DocumentRepository,
	exporter *export.Service,
	db *sql.DB,
	reg *prometheus.Registry,
	logger *slog.Logger,
) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:      "denpyod",
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	})

	s := &Server{
		app:      app,
		cfg:      cfg,
		pipe:     pipe,
		docsRepo: docs,
		exporter: exporter,
		db:       db,
		logger:   logger,
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(logger))

	if reg != nil {
		m, err := NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		s.metrics = m
		app.Use(m.Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	s.registerRoutes()
	return s, nil
}

// App exposes the fiber app for tests (app.Test) and the serve command.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.HTTPAddr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
