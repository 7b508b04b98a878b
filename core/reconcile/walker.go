package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// mediaExtensions is the closed set of recognized media file extensions.
// The set is fixed and not externally configurable.
var mediaExtensions = map[string]struct{}{
	".mp4": {}, ".mkv": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".flv": {}, ".webm": {}, ".m4v": {}, ".m4p": {}, ".m4b": {},
	".m4r": {}, ".3gp": {}, ".mpg": {}, ".mpeg": {}, ".m2v": {},
	".m2ts": {}, ".ts": {}, ".vob": {}, ".iso": {},
}

// IsMediaFile reports whether the file name carries a recognized media
// extension. Matching is case-insensitive.
func IsMediaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := mediaExtensions[ext]
	return ok
}

// Walker traverses root directories and yields candidate media files.
// Hidden files and files without a recognized media extension are skipped;
// with symlink checking enabled, broken symbolic links are counted on the
// run's stats instead of being yielded.
type Walker struct {
	checkSymlinks bool
	log           *zap.Logger
}

// NewWalker creates a walker.
func NewWalker(checkSymlinks bool, log *zap.Logger) *Walker {
	return &Walker{checkSymlinks: checkSymlinks, log: log}
}

// Walk traverses the tree under root and calls fn for every candidate file.
// Per-entry traversal errors are recorded on stats and do not abort the walk;
// fn returning a non-nil error stops the walk and is returned.
func (w *Walker) Walk(root string, stats *RunStats, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			stats.AddError("failed to read " + path + ": " + err.Error())
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil // hidden/system file
		}
		if !IsMediaFile(name) {
			return nil
		}

		if w.checkSymlinks && w.isBrokenSymlink(path) {
			w.log.Warn("Skipping broken symlink", zap.String("path", path))
			stats.IncrementBrokenSymlinks()
			return nil
		}

		return fn(path)
	})
}

// isBrokenSymlink reports whether path is a symbolic link whose target does
// not exist.
func (w *Walker) isBrokenSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	_, err = os.Stat(path) // follows the link
	return err != nil
}
