package reconcile

import "strings"

// Config holds configuration for the reconciliation engine.
type Config struct {
	// Directories is the list of root directories to scan, separated by
	// commas or newlines.
	Directories string `mapstructure:"directories" default:""`
	// Interval is the pacing delay in seconds between successive re-scan
	// requests sent to Plex.
	Interval int `mapstructure:"interval" default:"5"`
	// RunInterval is the number of hours between scheduled runs.
	RunInterval int `mapstructure:"run_interval" default:"12"`
	// SymlinkCheck enables detection and skipping of broken symbolic links.
	SymlinkCheck bool `mapstructure:"symlink_check" default:"false"`
}

// Paths returns the configured scan directories as a cleaned slice.
// Both comma-separated and newline-separated values are supported.
func (c Config) Paths() []string {
	raw := strings.ReplaceAll(c.Directories, "\n", ",")
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
