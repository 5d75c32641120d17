package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const fileName = ".linecounter"

// ErrCorrupt marks a history file that exists but cannot be decoded.
var ErrCorrupt = errors.New("history file is corrupt")

// DefaultPath returns ~/.linecounter for the invoking user.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, fileName), nil
}

// Load reads the history at path. A missing file yields an empty history.
// A file that exists but is not a valid history fails with ErrCorrupt so
// earlier scans are never silently discarded.
func Load(path string) (History, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return History{}, nil
		}
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}
	var raw []*Snapshot
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if raw == nil {
		// a literal "null" document
		return nil, fmt.Errorf("%w: %s: not a list of scans", ErrCorrupt, path)
	}
	h := make(History, 0, len(raw))
	for i, s := range raw {
		if s == nil {
			return nil, fmt.Errorf("%w: %s: scan %d is null", ErrCorrupt, path, i)
		}
		h = append(h, *s)
	}
	return h, nil
}

// Encode serialises h the way Save writes it: a JSON array indented with four
// spaces, items always present as an array.
func Encode(h History) ([]byte, error) {
	out := make(History, len(h))
	for i, s := range h {
		if s.Items == nil {
			s.Items = []FileRecord{}
		}
		out[i] = s
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save rewrites the whole history at path. The data goes to a temporary
// sibling first and is renamed into place, so a failed write leaves the
// previous file intact.
func Save(path string, h History) error {
	data, err := Encode(h)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save history %s: %w", path, err)
	}
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return fmt.Errorf("save history %s: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("save history %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("save history %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save history %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save history %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save history %s: %w", path, err)
	}
	return nil
}

// Append returns a new history with s added at the end; h is not modified.
func (h History) Append(s Snapshot) History {
	out := make(History, 0, len(h)+1)
	out = append(out, h...)
	return append(out, s)
}
