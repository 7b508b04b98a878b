package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

// writeFile creates an empty file, creating parent directories as needed.
func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func collectCandidates(t *testing.T, w *Walker, root string, stats *RunStats) []string {
	t.Helper()
	var got []string
	err := w.Walk(root, stats, func(path string) error {
		got = append(got, path)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestIsMediaFile(t *testing.T) {
	assert.True(t, IsMediaFile("a.mkv"))
	assert.True(t, IsMediaFile("A.MKV"), "extension matching is case-insensitive")
	assert.True(t, IsMediaFile("b.m2ts"))
	assert.False(t, IsMediaFile("notes.txt"))
	assert.False(t, IsMediaFile("cover.jpg"))
	assert.False(t, IsMediaFile("noextension"))
}

func TestWalk_FiltersCandidates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A", "a.mkv"))
	writeFile(t, filepath.Join(root, "A", "a.srt"))       // unrecognized extension
	writeFile(t, filepath.Join(root, "A", ".hidden.mkv")) // hidden
	writeFile(t, filepath.Join(root, "B", "b.MP4"))       // uppercase extension
	writeFile(t, filepath.Join(root, "B", "cover.jpg"))

	stats := NewRunStats()
	got := collectCandidates(t, NewWalker(false, zap.NewNop()), root, stats)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "A", "a.mkv"),
		filepath.Join(root, "B", "b.MP4"),
	}, got)
	assert.Empty(t, stats.Errors)
}

func TestWalk_BrokenSymlink(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mkv"))

	target := filepath.Join(root, "gone.mkv")
	link := filepath.Join(root, "link.mkv")
	writeFile(t, target)
	require.NoError(t, os.Symlink(target, link))
	require.NoError(t, os.Remove(target)) // break the link

	t.Run("checking enabled", func(t *testing.T) {
		stats := NewRunStats()
		got := collectCandidates(t, NewWalker(true, zap.NewNop()), root, stats)

		assert.Equal(t, []string{filepath.Join(root, "a.mkv")}, got)
		assert.Equal(t, 1, stats.BrokenSymlinks)
		assert.Empty(t, stats.Errors, "a broken symlink is not an error")
	})

	t.Run("checking disabled", func(t *testing.T) {
		stats := NewRunStats()
		got := collectCandidates(t, NewWalker(false, zap.NewNop()), root, stats)

		assert.ElementsMatch(t, []string{
			filepath.Join(root, "a.mkv"),
			link,
		}, got)
		assert.Zero(t, stats.BrokenSymlinks)
	})
}

func TestWalk_ValidSymlinkIsYielded(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.mkv")
	link := filepath.Join(root, "link.mkv")
	writeFile(t, target)
	require.NoError(t, os.Symlink(target, link))

	stats := NewRunStats()
	got := collectCandidates(t, NewWalker(true, zap.NewNop()), root, stats)

	assert.ElementsMatch(t, []string{target, link}, got)
	assert.Zero(t, stats.BrokenSymlinks)
}

func TestWalk_MissingRoot(t *testing.T) {
	stats := NewRunStats()
	err := NewWalker(false, zap.NewNop()).Walk(filepath.Join(t.TempDir(), "nope"), stats, func(string) error {
		t.Fatal("callback must not run for a missing root")
		return nil
	})

	// WalkDir reports the failed Lstat through the callback, which records
	// it instead of aborting
	assert.NoError(t, err)
	assert.Len(t, stats.Errors, 1)
}
