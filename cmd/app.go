package cmd

import (
	"context"
	"time"

	"github.com/lmgveerhoek/rescan/core/config"
	"github.com/lmgveerhoek/rescan/core/history"
	"github.com/lmgveerhoek/rescan/core/notify"
	"github.com/lmgveerhoek/rescan/core/plex"
	"github.com/lmgveerhoek/rescan/core/reconcile"
	"github.com/lmgveerhoek/rescan/core/storage"

	"go.uber.org/zap"
)

// buildDispatcher assembles the notification sinks enabled by configuration.
func buildDispatcher(cfg *config.Config, l *zap.Logger) (*notify.Dispatcher, error) {
	var sinks []notify.Sink

	if cfg.Notifications.Enabled && cfg.Notifications.DiscordWebhookURL != "" {
		sinks = append(sinks, notify.NewDiscordSink(cfg.Notifications))
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, notify.NewArchiveSink(client, cfg.Storage))
	}

	timeout := time.Duration(cfg.Notifications.TimeoutSeconds) * time.Second
	return notify.NewDispatcher(sinks, timeout, l), nil
}

// openHistory opens the run history store when persistence is enabled.
// Returns nil when disabled.
func openHistory(cfg *config.Config, l *zap.Logger) (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	db, err := history.Connect(cfg.History)
	if err != nil {
		return nil, err
	}

	store, err := history.NewStore(db)
	if err != nil {
		return nil, err
	}

	l.Info("Run history enabled", zap.String("driver", cfg.History.Driver))
	return store, nil
}

// executeRun performs one reconciliation pass and fans the summary out
// to the configured sinks and the history store.
func executeRun(ctx context.Context, engine *reconcile.Engine, dispatcher *notify.Dispatcher, store *history.Store, l *zap.Logger) error {
	stats := engine.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	summary := stats.Summary()
	reportRun(l, summary)

	dispatcher.Dispatch(ctx, summary)

	if store != nil {
		if err := store.Save(ctx, summary); err != nil {
			l.Error("Failed to persist run summary", zap.Error(err))
		}
	}

	return nil
}

// pingPlex verifies the Plex server is reachable before a run.
func pingPlex(ctx context.Context, client plex.Client, cfg plex.Config) error {
	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()
	return client.Ping(pingCtx)
}

// reportRun logs the run outcome in a structured form.
func reportRun(l *zap.Logger, s *reconcile.Summary) {
	fields := []zap.Field{
		zap.String("run_id", s.RunID),
		zap.Duration("duration", s.Duration),
		zap.Int("total_scanned", s.TotalScanned),
		zap.Int("total_missing", s.TotalMissing),
		zap.Int("errors", len(s.Errors)),
		zap.Int("warnings", len(s.Warnings)),
	}
	if s.BrokenSymlinks > 0 {
		fields = append(fields, zap.Int("broken_symlinks", s.BrokenSymlinks))
	}

	l.Info("Run completed", fields...)

	for library, items := range s.Missing {
		l.Info("Missing from library",
			zap.String("library", library),
			zap.Int("count", len(items)),
			zap.Strings("files", items),
		)
	}
	for _, msg := range s.Errors {
		l.Error(msg)
	}
	for _, msg := range s.Warnings {
		l.Warn(msg)
	}
}
