// Package scan builds one history snapshot by walking a tree and counting
// the lines of every file that survives the filter.
package scan

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"line-tracker/internal/history"
	"line-tracker/internal/textutil"
	"line-tracker/internal/walkwalk"
)

// Options controls a single scan.
type Options struct {
	Filter           walkwalk.Filter
	IgnoreWhitespace bool
	// OnFile is called once per counted file, in discovery order.
	OnFile func(history.FileRecord)
	// Now supplies the snapshot timestamp; time.Now when nil.
	Now    func() time.Time
	Logger *zap.Logger
}

// Build walks root and returns the resulting snapshot. The snapshot date is
// taken once, before the walk starts. Files that cannot be opened or read
// are logged and left out of the snapshot.
func Build(root string, opts Options) (history.Snapshot, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	date := now().Format(history.DateLayout)

	items := make([]history.FileRecord, 0, 64)
	err := walkwalk.Walk(root, opts.Filter, log, func(path string) {
		lines, err := countFile(path, opts.IgnoreWhitespace)
		if err != nil {
			log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			return
		}
		rec := history.FileRecord{Path: path, Lines: lines}
		items = append(items, rec)
		if opts.OnFile != nil {
			opts.OnFile(rec)
		}
	})
	if err != nil {
		return history.Snapshot{}, err
	}
	searchPath := root
	snap := history.NewSnapshot(date, &searchPath, items)
	log.Debug("scan complete",
		zap.String("root", root),
		zap.Int("files", len(snap.Items)),
		zap.Int("total", snap.Total))
	return snap, nil
}

func countFile(path string, ignoreWhitespace bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	n, err := textutil.Count(f, ignoreWhitespace)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}
