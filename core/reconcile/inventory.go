package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/lmgveerhoek/rescan/core/plex"

	"go.uber.org/zap"
)

// Inventory holds the per-section sets of file paths the catalog currently
// reports. Each set is built lazily, at most once per run, and answers all
// membership checks for its section with exact string equality. The
// catalog's own path format is authoritative, no normalization is applied.
//
// An Inventory is run-scoped: the engine creates a fresh one for every run,
// so stale catalog data never leaks across runs.
type Inventory struct {
	client plex.Client
	log    *zap.Logger
	sets   map[string]map[string]struct{}
}

// NewInventory creates an empty inventory backed by the given catalog client.
func NewInventory(client plex.Client, log *zap.Logger) *Inventory {
	return &Inventory{
		client: client,
		log:    log,
		sets:   make(map[string]map[string]struct{}),
	}
}

// EnsureBuilt builds the inventory set for a section if it has not been built
// yet. It is idempotent: once a section's set exists, the call is a no-op.
//
// On failure nothing is stored, so the section remains unbuilt and a later
// call may retry the build. A half-built set would otherwise produce false
// "missing" verdicts.
func (inv *Inventory) EnsureBuilt(ctx context.Context, section plex.Section) error {
	if _, ok := inv.sets[section.ID]; ok {
		return nil
	}

	inv.log.Info("Building library inventory", zap.String("section", section.Title))
	start := time.Now()

	files, err := inv.client.SectionFiles(ctx, section)
	if err != nil {
		return fmt.Errorf("failed to build inventory for library %q: %w", section.Title, err)
	}

	set := make(map[string]struct{}, len(files))
	for _, file := range files {
		set[file] = struct{}{}
	}
	inv.sets[section.ID] = set

	inv.log.Info("Library inventory built",
		zap.String("section", section.Title),
		zap.Int("files", len(set)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Built reports whether the section's set has been successfully built.
func (inv *Inventory) Built(sectionID string) bool {
	_, ok := inv.sets[sectionID]
	return ok
}

// Contains reports whether the catalog knows the given path as belonging to
// the section. It returns false for every path of a section whose set has
// not been built.
func (inv *Inventory) Contains(sectionID, path string) bool {
	set, ok := inv.sets[sectionID]
	if !ok {
		return false
	}
	_, found := set[path]
	return found
}
