package reconcile

import (
	"time"

	"github.com/google/uuid"
)

// RunStats accumulates the counters and findings of a single reconciliation
// run. It is created at run start, mutated throughout the run by the engine,
// and handed off read-only (via Summary) to the notification sinks and the
// history store when the run ends.
type RunStats struct {
	// RunID uniquely identifies the run across logs, history and
	// notifications.
	RunID string

	// StartTime is when the run started.
	StartTime time.Time

	// TotalScanned is the number of candidate files examined.
	TotalScanned int

	// TotalMissing is the number of files absent from the catalog.
	TotalMissing int

	// BrokenSymlinks counts skipped broken symbolic links. These are not
	// errors and not part of TotalScanned.
	BrokenSymlinks int

	// MissingItems maps section title to the missing file paths found under
	// it, in discovery order.
	MissingItems map[string][]string

	// Errors holds recorded error messages in occurrence order.
	Errors []string

	// Warnings holds recorded warning messages in occurrence order.
	Warnings []string
}

// NewRunStats creates empty stats for a new run.
func NewRunStats() *RunStats {
	return &RunStats{
		RunID:        uuid.NewString(),
		StartTime:    time.Now(),
		MissingItems: make(map[string][]string),
	}
}

// AddMissingItem records a file missing from the catalog under its section
// title.
func (s *RunStats) AddMissingItem(sectionTitle, filePath string) {
	s.MissingItems[sectionTitle] = append(s.MissingItems[sectionTitle], filePath)
	s.TotalMissing++
}

// AddError records an error message.
func (s *RunStats) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// AddWarning records a warning message.
func (s *RunStats) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// IncrementScanned counts one examined candidate file.
func (s *RunStats) IncrementScanned() {
	s.TotalScanned++
}

// IncrementBrokenSymlinks counts one skipped broken symlink.
func (s *RunStats) IncrementBrokenSymlinks() {
	s.BrokenSymlinks++
}

// RunTime returns the elapsed time since the run started.
func (s *RunStats) RunTime() time.Duration {
	return time.Since(s.StartTime)
}

// Summary is the immutable run report handed to notification sinks and the
// history store once a run has finished.
type Summary struct {
	RunID          string              `json:"run_id"`
	StartedAt      time.Time           `json:"started_at"`
	Duration       time.Duration       `json:"duration"`
	TotalScanned   int                 `json:"total_scanned"`
	TotalMissing   int                 `json:"total_missing"`
	BrokenSymlinks int                 `json:"broken_symlinks"`
	Missing        map[string][]string `json:"missing"`
	Errors         []string            `json:"errors"`
	Warnings       []string            `json:"warnings"`
}

// Summary snapshots the stats into an independent, read-only report.
// The copy keeps later consumers isolated from the engine's state.
func (s *RunStats) Summary() *Summary {
	missing := make(map[string][]string, len(s.MissingItems))
	for title, paths := range s.MissingItems {
		missing[title] = append([]string(nil), paths...)
	}

	return &Summary{
		RunID:          s.RunID,
		StartedAt:      s.StartTime,
		Duration:       s.RunTime(),
		TotalScanned:   s.TotalScanned,
		TotalMissing:   s.TotalMissing,
		BrokenSymlinks: s.BrokenSymlinks,
		Missing:        missing,
		Errors:         append([]string(nil), s.Errors...),
		Warnings:       append([]string(nil), s.Warnings...),
	}
}
