package server

import (
	"context"
	"errors"

	"github.com/lmgveerhoek/rescan/core/logger"
	"github.com/lmgveerhoek/rescan/core/middleware/auth"
	"github.com/lmgveerhoek/rescan/core/middleware/rayid"
	"github.com/lmgveerhoek/rescan/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunSource serves past run summaries to the API. It is satisfied by
// the history store.
type RunSource interface {
	Recent(ctx context.Context, limit int) ([]reconcile.Summary, error)
	Latest(ctx context.Context) (*reconcile.Summary, error)
}

// Server exposes run history and health over HTTP.
type Server struct {
	app  *fiber.App
	cfg  Config
	runs RunSource
	log  *zap.Logger
}

// New builds the Fiber application with all routes and middleware
// registered. runs may be nil when history persistence is disabled.
func New(cfg Config, runs RunSource, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We will log our own startup message
	})

	s := &Server{app: app, cfg: cfg, runs: runs, log: log}

	// 1. RayID (Must be first to trace everything)
	app.Use(rayid.New())

	// 2. Logging Middleware (Custom to use Zap + RayID)
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Public routes
	app.Get("/healthz", s.HandleHealth)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Protected API
	api := app.Group("/api", auth.New(auth.Config{ApiKey: cfg.ApiKey}))
	api.Get("/runs", s.HandleRuns)
	api.Get("/runs/latest", s.HandleLatestRun)

	return s
}

// Listen starts the server and blocks until it stops.
func (s *Server) Listen() error {
	s.log.Info("Starting status server", zap.String("port", s.cfg.Port))
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app for testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// HandleHealth reports process liveness.
// @Summary Health Check
// @Description Returns 200 when the process is up.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleRuns lists recent reconciliation runs.
// @Summary List Recent Runs
// @Description Returns the most recent run summaries, newest first.
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum number of runs to return" default(20)
// @Success 200 {array} reconcile.Summary
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "History Disabled"
// @Security ApiKeyAuth
// @Router /api/runs [get]
func (s *Server) HandleRuns(c *fiber.Ctx) error {
	if s.runs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "run history is disabled",
		})
	}

	limit := c.QueryInt("limit", 20)

	summaries, err := s.runs.Recent(c.Context(), limit)
	if err != nil {
		logger.WithRayID(s.log, c).Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list runs",
		})
	}

	return c.JSON(summaries)
}

// HandleLatestRun returns the most recent run.
// @Summary Latest Run
// @Description Returns the summary of the most recently completed run.
// @Tags runs
// @Produce json
// @Success 200 {object} reconcile.Summary
// @Failure 404 {object} map[string]string "No Runs Yet"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "History Disabled"
// @Security ApiKeyAuth
// @Router /api/runs/latest [get]
func (s *Server) HandleLatestRun(c *fiber.Ctx) error {
	if s.runs == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "run history is disabled",
		})
	}

	summary, err := s.runs.Latest(c.Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no runs recorded yet",
			})
		}
		logger.WithRayID(s.log, c).Error("Failed to load latest run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load latest run",
		})
	}

	return c.JSON(summary)
}
