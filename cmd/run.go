package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/lmgveerhoek/rescan/core/config"
	"github.com/lmgveerhoek/rescan/core/logger"
	"github.com/lmgveerhoek/rescan/core/plex"
	"github.com/lmgveerhoek/rescan/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd performs a single reconciliation pass and exits.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single reconciliation pass",
	Long: `Scans the configured directories once, compares them against the Plex
library inventory, requests re-indexing for folders with missing files, and
reports the results. Intended for cron jobs and manual invocations; use
"start" for the long-running daemon.`,
	RunE: runOnce,
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
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

	// 3. Verify Plex is reachable
	client := plex.NewClient(cfg.Plex)
	if err := pingPlex(ctx, client, cfg.Plex); err != nil {
		return fmt.Errorf("plex server unreachable at %s: %w", cfg.Plex.URL, err)
	}

	// 4. Notification sinks
	dispatcher, err := buildDispatcher(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to set up notifications: %w", err)
	}

	// 5. Run history (optional)
	store, err := openHistory(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}

	// 6. Reconcile
	engine := reconcile.NewEngine(client, cfg.Scan, nil, l)
	return executeRun(ctx, engine, dispatcher, store, l)
}
