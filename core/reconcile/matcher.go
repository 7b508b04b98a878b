package reconcile

import (
	"path/filepath"
	"strings"

	"github.com/lmgveerhoek/rescan/core/plex"
)

// ResolveSection returns the section whose registered root location is the
// longest path prefix of the given file path. Paths are normalized
// syntactically (trailing separators, "." and ".." elements) without touching
// the filesystem.
//
// Matching respects path-segment boundaries: root "/media/Movies" matches
// "/media/Movies/x.mkv" but never "/media/Movies2/x.mkv". The second return
// value is false when no root matches.
func ResolveSection(path string, sections []plex.Section) (plex.Section, bool) {
	candidate := filepath.Clean(path)

	var best plex.Section
	bestLen := -1

	for _, section := range sections {
		for _, root := range section.Locations {
			normRoot := filepath.Clean(root)
			if !hasPathPrefix(candidate, normRoot) {
				continue
			}
			// Longest root wins: nested library roots resolve to the
			// most specific section
			if len(normRoot) > bestLen {
				best = section
				bestLen = len(normRoot)
			}
		}
	}

	return best, bestLen >= 0
}

// hasPathPrefix reports whether root is a path-component prefix of path.
func hasPathPrefix(path, root string) bool {
	if path == root {
		return true
	}
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
