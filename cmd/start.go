package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmgveerhoek/rescan/core/config"
	"github.com/lmgveerhoek/rescan/core/logger"
	"github.com/lmgveerhoek/rescan/core/plex"
	"github.com/lmgveerhoek/rescan/core/reconcile"
	"github.com/lmgveerhoek/rescan/core/scheduler"
	"github.com/lmgveerhoek/rescan/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/lmgveerhoek/rescan/docs/swagger"
)

// @title Rescan API
// @version 1.0
// @description Status API for the Plex missing media reconciler.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the rescan daemon",
	Long: `Starts the scheduler, which reconciles the configured directories
against Plex at a fixed interval, and the status HTTP server.`,
	RunE: runDaemon,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Scan.Paths()) == 0 {
		return errors.New("no scan directories configured, set SCAN_DIRECTORIES")
	}

	// 2. Initialize Logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	zap.ReplaceGlobals(l)

	// 3. Plex client. The daemon starts even when Plex is down; the
	// scheduler retries on the next run.
	client := plex.NewClient(cfg.Plex)
	if err := pingPlex(ctx, client, cfg.Plex); err != nil {
		l.Warn("Plex server unreachable, runs will retry", zap.String("url", cfg.Plex.URL), zap.Error(err))
	}

	// 4. Notification sinks
	dispatcher, err := buildDispatcher(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to set up notifications: %w", err)
	}

	// 5. Run history (optional)
	store, err := openHistory(cfg, l)
	if err != nil {
		l.Warn("Optional run history unavailable", zap.Error(err))
		store = nil
	}

	engine := reconcile.NewEngine(client, cfg.Scan, nil, l)

	g, ctx := errgroup.WithContext(ctx)

	// 6. Scheduler
	interval := time.Duration(cfg.Scan.RunInterval) * time.Hour
	sched := scheduler.New(interval, func(ctx context.Context) error {
		return executeRun(ctx, engine, dispatcher, store, l)
	}, l)
	g.Go(func() error {
		return sched.Start(ctx)
	})

	// 7. Status server
	if cfg.Server.Enabled {
		// *history.Store is typed nil when disabled; the server expects
		// a nil interface in that case.
		var runs server.RunSource
		if store != nil {
			runs = store
		}
		srv := server.New(cfg.Server, runs, l)

		g.Go(srv.Listen)
		g.Go(func() error {
			<-ctx.Done()
			l.Info("Shutting down status server...")
			return srv.Shutdown()
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	l.Info("Daemon stopped")
	return nil
}
