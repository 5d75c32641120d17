package walkwalk

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides which candidate paths a scan ignores.
//
// IgnoreExtension and IgnoreFolders are plain substring rules applied to the
// full path as produced by the walk (root included). They are not aware of
// path segments: "build" also skips "rebuild.sh". IgnoreGlobs are doublestar
// patterns matched against the slash-separated path relative to the root.
type Filter struct {
	IgnoreExtension *string
	IgnoreFolders   []string
	IgnoreGlobs     []string
}

// SplitFolders turns a comma-separated list into trimmed, non-empty entries.
func SplitFolders(csv string) []string {
	out := make([]string, 0, 4)
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate rejects malformed glob patterns.
func (f Filter) Validate() error {
	for _, g := range f.IgnoreGlobs {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("invalid ignore glob %q", g)
		}
	}
	return nil
}

// ShouldSkip reports whether path contains an ignored folder substring or
// the ignored extension substring.
func (f Filter) ShouldSkip(path string) bool {
	for _, folder := range f.IgnoreFolders {
		folder = strings.TrimSpace(folder)
		if folder != "" && strings.Contains(path, folder) {
			return true
		}
	}
	return f.IgnoreExtension != nil && strings.Contains(path, *f.IgnoreExtension)
}

// matchGlob reports whether rel matches any ignore glob.
func (f Filter) matchGlob(rel string) bool {
	for _, g := range f.IgnoreGlobs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}
