// Package history defines the scan snapshot model, the on-disk history log
// and the comparison of a new scan against earlier ones.
package history

// DateLayout is the fixed format of Snapshot.Date (DD/MM/YYYY HH:MM:SS).
const DateLayout = "02/01/2006 15:04:05"

// FileRecord is one file's line count within a snapshot.
type FileRecord struct {
	Path  string `json:"path" yaml:"path"`
	Lines int    `json:"lines" yaml:"lines"`
}

// Snapshot is the result of one scan of one search path.
// Items keep discovery order and Total is the sum of their Lines.
// SearchPath is nil only for entries written without a path.
type Snapshot struct {
	Date       string       `json:"date" yaml:"date"`
	Items      []FileRecord `json:"items" yaml:"items"`
	Total      int          `json:"total" yaml:"total"`
	SearchPath *string      `json:"search_path" yaml:"search_path"`
}

// NewSnapshot builds a snapshot and computes its total from items.
func NewSnapshot(date string, searchPath *string, items []FileRecord) Snapshot {
	total := 0
	for _, it := range items {
		total += it.Lines
	}
	if items == nil {
		items = []FileRecord{}
	}
	return Snapshot{Date: date, Items: items, Total: total, SearchPath: searchPath}
}

// Path returns the search path or "" when absent.
func (s Snapshot) Path() string {
	if s.SearchPath == nil {
		return ""
	}
	return *s.SearchPath
}

// History is the chronological log of all snapshots across search paths.
type History []Snapshot

// FileDelta is the line count change of one file between two snapshots.
type FileDelta struct {
	Path     string `json:"path" yaml:"path"`
	LinesDif int    `json:"lines_dif" yaml:"lines_dif"`
}

// Result is the comparison of a snapshot against its predecessor.
type Result struct {
	// LinesDif is current.Total minus the prior total, or current.Total
	// when there is no prior snapshot.
	LinesDif int
	// FilesDif lists files that grew since the prior snapshot.
	FilesDif []FileDelta
	// Prior is the snapshot compared against, nil for a first scan.
	Prior *Snapshot
}

// FileChange is one signed change of a file between two consecutive scans.
type FileChange struct {
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	LinesDif int    `json:"lines_dif" yaml:"lines_dif"`
}

// FileHistory collects every recorded change of a single path.
type FileHistory struct {
	Path    string       `json:"path" yaml:"path"`
	Changes []FileChange `json:"changes" yaml:"changes"`
}
