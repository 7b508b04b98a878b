package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/lmgveerhoek/rescan/core/logger"
	"github.com/lmgveerhoek/rescan/core/plex"

	"go.uber.org/zap"
)

// Engine drives a reconciliation run: it fetches the section list from the
// catalog, walks the configured root directories, resolves each candidate
// file to its section, tests it against the section inventory, and requests
// a targeted re-scan of every folder that contains missing files.
type Engine struct {
	client       plex.Client
	paths        []string
	symlinkCheck bool
	pacer        Pacer
	log          *zap.Logger
}

// NewEngine creates an engine from the scan configuration. A nil pacer
// selects the configured fixed-interval pacer.
func NewEngine(client plex.Client, cfg Config, pacer Pacer, log *zap.Logger) *Engine {
	if pacer == nil {
		pacer = NewIntervalPacer(time.Duration(cfg.Interval) * time.Second)
	}
	return &Engine{
		client:       client,
		paths:        cfg.Paths(),
		symlinkCheck: cfg.SymlinkCheck,
		pacer:        pacer,
		log:          log,
	}
}

// Run performs one full reconciliation pass and returns its stats. All state
// (section list, inventory, scanned-folder set) is created fresh for the run
// and discarded with it.
//
// A run never fails as a whole: operational failures are recorded on the
// returned stats and processing continues with the next file, section or
// root. The one precondition is that the catalog reports both a movie and a
// show library; without them the run records the error and returns before
// scanning.
func (e *Engine) Run(ctx context.Context) *RunStats {
	stats := NewRunStats()
	log := logger.WithRun(e.log, stats.RunID)

	sections, err := e.client.Sections(ctx)
	if err != nil {
		msg := "failed to list library sections: " + err.Error()
		log.Error(msg)
		stats.AddError(msg)
		return stats
	}

	if !hasRequiredSections(sections) {
		msg := "could not find both Movie and TV Show libraries"
		log.Error(msg)
		stats.AddError(msg)
		return stats
	}

	// Fresh per-run state
	inventory := NewInventory(e.client, log)
	scannedFolders := make(map[string]struct{})
	walker := NewWalker(e.symlinkCheck, log)

	for _, root := range e.paths {
		log.Info("Scanning directory", zap.String("path", root))

		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			msg := "directory not found: " + root
			log.Error(msg)
			stats.AddError(msg)
			continue
		}

		err := walker.Walk(root, stats, func(path string) error {
			e.processFile(ctx, path, sections, inventory, scannedFolders, stats, log)
			return ctx.Err()
		})
		if err != nil {
			if ctx.Err() != nil {
				log.Warn("Run canceled", zap.String("root", root))
				return stats
			}
			stats.AddError("failed to walk " + root + ": " + err.Error())
		}
	}

	log.Info("Run finished",
		zap.Int("scanned", stats.TotalScanned),
		zap.Int("missing", stats.TotalMissing),
		zap.Int("broken_symlinks", stats.BrokenSymlinks),
		zap.Duration("elapsed", stats.RunTime()),
	)
	return stats
}

// processFile classifies one candidate file and, if the catalog does not know
// it, records it as missing and requests a re-scan of its parent folder.
func (e *Engine) processFile(
	ctx context.Context,
	path string,
	sections []plex.Section,
	inventory *Inventory,
	scannedFolders map[string]struct{},
	stats *RunStats,
	log *zap.Logger,
) {
	stats.IncrementScanned()

	section, ok := ResolveSection(path, sections)
	if !ok {
		msg := "no matching library found for path: " + path
		log.Warn(msg)
		stats.AddWarning(msg)
		return
	}

	if err := inventory.EnsureBuilt(ctx, section); err != nil {
		// Degraded mode: the section stays unbuilt and retryable; this file
		// is treated as not found below
		log.Error("Inventory build failed", zap.Error(err))
		stats.AddError(err.Error())
	}

	if inventory.Contains(section.ID, path) {
		return
	}

	stats.AddMissingItem(section.Title, path)
	log.Info("Found missing item",
		zap.String("path", path),
		zap.String("section", section.Title),
	)

	parent := filepath.Dir(path)
	if _, done := scannedFolders[parent]; done {
		return // one re-scan per folder per run
	}

	if err := e.client.RefreshPath(ctx, section.ID, parent); err != nil {
		msg := "failed to trigger scan for " + parent + ": " + err.Error()
		log.Error(msg)
		stats.AddError(msg)
		// The folder is not marked as scanned so a later missing file in
		// the same folder can retry the request within this run
		return
	}

	scannedFolders[parent] = struct{}{}
	log.Info("Scan triggered", zap.String("folder", parent))

	if err := e.pacer.Pace(ctx); err != nil {
		log.Warn("Pacing interrupted", zap.Error(err))
	}
}

// hasRequiredSections reports whether the catalog exposes at least one movie
// and one show library, the precondition for a meaningful run.
func hasRequiredSections(sections []plex.Section) bool {
	var movie, show bool
	for _, s := range sections {
		switch s.Type {
		case plex.TypeMovie:
			movie = true
		case plex.TypeShow:
			show = true
		}
	}
	return movie && show
}
