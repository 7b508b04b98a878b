package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStats_Accumulation(t *testing.T) {
	stats := NewRunStats()
	require.NotEmpty(t, stats.RunID)
	require.WithinDuration(t, time.Now(), stats.StartTime, time.Second)

	stats.IncrementScanned()
	stats.IncrementScanned()
	stats.AddMissingItem("Movies", "/media/movies/B/b.mkv")
	stats.AddMissingItem("Movies", "/media/movies/C/c.mkv")
	stats.AddMissingItem("TV Shows", "/media/tv/S/e1.mkv")
	stats.IncrementBrokenSymlinks()
	stats.AddError("boom")
	stats.AddWarning("odd")

	assert.Equal(t, 2, stats.TotalScanned)
	assert.Equal(t, 3, stats.TotalMissing)
	assert.Equal(t, 1, stats.BrokenSymlinks)
	// Discovery order is preserved within a section
	assert.Equal(t, []string{"/media/movies/B/b.mkv", "/media/movies/C/c.mkv"}, stats.MissingItems["Movies"])
}

func TestSummary_IsIndependentCopy(t *testing.T) {
	stats := NewRunStats()
	stats.AddMissingItem("Movies", "/media/movies/B/b.mkv")
	stats.AddError("boom")

	summary := stats.Summary()

	// Later mutation of the stats must not leak into the summary
	stats.AddMissingItem("Movies", "/media/movies/C/c.mkv")
	stats.AddError("boom again")

	assert.Equal(t, []string{"/media/movies/B/b.mkv"}, summary.Missing["Movies"])
	assert.Equal(t, []string{"boom"}, summary.Errors)
	assert.Equal(t, 1, summary.TotalMissing)
	assert.Equal(t, stats.RunID, summary.RunID)
}
