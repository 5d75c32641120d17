// Package walkwalk provides the best-effort filesystem walker used by scans
// together with the path filter that decides what gets counted.
package walkwalk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type walkState struct {
	root   string
	filter Filter
	log    *zap.Logger
	visit  func(path string)
}

// Walk traverses root recursively in lexical order and calls visit for every
// file that passes the filter. Entries that cannot be read are logged and
// skipped; only an unreadable root is reported as an error.
//
// Paths handed to visit are joined onto root exactly as given, so a relative
// root yields relative paths.
func Walk(root string, f Filter, log *zap.Logger, visit func(path string)) error {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan root %s: not a directory", root)
	}
	if li, err := os.Lstat(root); err == nil && li.Mode()&fs.ModeSymlink != 0 {
		// WalkDir only follows a root link when it ends in a separator.
		root += string(os.PathSeparator)
	}
	ws := &walkState{root: root, filter: f, log: log, visit: visit}
	return filepath.WalkDir(root, ws.walkFn)
}

func (ws *walkState) walkFn(path string, d fs.DirEntry, err error) error {
	if err != nil {
		if path == ws.root {
			return err
		}
		ws.log.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
		if d != nil && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		// A directory matching a substring rule cannot contain a path
		// that escapes it.
		if path != ws.root && ws.filter.ShouldSkip(path) {
			ws.log.Debug("pruned directory", zap.String("path", path))
			return filepath.SkipDir
		}
		return nil
	}
	if !ws.isRegular(path, d) {
		return nil
	}
	if ws.filter.ShouldSkip(path) || ws.filter.matchGlob(ws.relative(path)) {
		ws.log.Debug("ignored file", zap.String("path", path))
		return nil
	}
	ws.visit(path)
	return nil
}

// isRegular resolves symlinks to decide whether the entry is a plain file.
// Linked directories are never descended into.
func (ws *walkState) isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		ws.log.Warn("skipping broken symlink", zap.String("path", path), zap.Error(err))
		return false
	}
	return info.Mode().IsRegular()
}

func (ws *walkState) relative(path string) string {
	rel, err := filepath.Rel(ws.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimPrefix(rel, "./")
}
