package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"line-tracker/internal/history"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestNormalizeArgs(t *testing.T) {
	got := normalizeArgs([]string{"-p", "-iw", "-ie", ".log", "-if=a,b", "-iw", "-q", "-help", "--", "-ie"})
	want := []string{"-p", "-iw", "--ignore-ext", ".log", "--ignore-folders=a,b", "--ignore-whitespace", "-q", "--help", "--", "-ie"}
	assert.Equal(t, want, got)
}

func TestRunMissingPathWritesNothing(t *testing.T) {
	hist := filepath.Join(t.TempDir(), "hist")

	code, _, stderr := runCLI(t, "--history-file", hist, "-q")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "no path specified")
	assert.NoFileExists(t, hist)
}

func TestRunFlagErrorIsUsageError(t *testing.T) {
	code, _, _ := runCLI(t, "--no-such-flag")
	assert.Equal(t, 2, code)

	code, _, stderr := runCLI(t, "stray")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unexpected argument "stray"`)

	root := t.TempDir()
	hist := filepath.Join(t.TempDir(), "hist")
	code, _, stderr = runCLI(t, "-p", root, "--history-file", hist, "--ignore-glob", "[", "-q")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `"["`)
	assert.NoFileExists(t, hist)
}

func TestRunHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "-help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "--ignore-folders")
}

func TestRunTracksGrowthAcrossScans(t *testing.T) {
	root := t.TempDir()
	hist := filepath.Join(t.TempDir(), "hist")
	a := filepath.Join(root, "a.txt")
	writeFile(t, a, "1\n2\n3\n")
	writeFile(t, filepath.Join(root, "b.txt"), "1\n2\n3\n4\n5\n")

	code, stdout, stderr := runCLI(t, "-p", root, "--history-file", hist)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "File: "+a+" | Lines: 3")
	assert.Contains(t, stdout, "total project lines: 8")
	assert.Contains(t, stdout, "lines changed since last update: 8")
	assert.Contains(t, stdout, "no previous scan of this path")

	writeFile(t, a, "1\n2\n3\n4\n5\n6\n")
	code, stdout, stderr = runCLI(t, "-p", root, "--history-file", hist, "-q", "--file-history", "--patch")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "File: ")
	assert.Contains(t, stdout, "total project lines: 11")
	assert.Contains(t, stdout, "lines changed since last update: 3\n")
	assert.Contains(t, stdout, a+" +3\n")
	assert.NotContains(t, stdout, "b.txt +")
	assert.Contains(t, stdout, "3 lines added")
	assert.Contains(t, stdout, "-"+a+"\t3")
	assert.Contains(t, stdout, "+"+a+"\t6")

	h, err := history.Load(hist)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, 8, h[0].Total)
	assert.Equal(t, 11, h[1].Total)
	assert.Equal(t, root, h[1].Path())
}

func TestRunLegacyFlags(t *testing.T) {
	root := t.TempDir()
	hist := filepath.Join(t.TempDir(), "hist")
	writeFile(t, filepath.Join(root, "x.log"), "1\n2\n")
	writeFile(t, filepath.Join(root, "y.txt"), "a\n\n  \nb\n")
	writeFile(t, filepath.Join(root, "vendor", "z.txt"), "1\n")

	code, _, stderr := runCLI(t, "-p", root, "-ie", ".log", "-if", " vendor , other", "-iw", "-q", "--history-file", hist)
	require.Equal(t, 0, code, stderr)

	h, err := history.Load(hist)
	require.NoError(t, err)
	require.Len(t, h, 1)
	require.Len(t, h[0].Items, 1)
	assert.Equal(t, filepath.Join(root, "y.txt"), h[0].Items[0].Path)
	assert.Equal(t, 2, h[0].Total)
}

func TestRunCorruptHistoryIsFatalAndUntouched(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), "1\n")
	hist := filepath.Join(t.TempDir(), "hist")
	writeFile(t, hist, "[{broken")

	code, _, stderr := runCLI(t, "-p", root, "-q", "--history-file", hist)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "corrupt")

	data, err := os.ReadFile(hist)
	require.NoError(t, err)
	assert.Equal(t, "[{broken", string(data))
}

func TestRunMissingRootIsRuntimeError(t *testing.T) {
	hist := filepath.Join(t.TempDir(), "hist")
	code, _, _ := runCLI(t, "-p", filepath.Join(t.TempDir(), "gone"), "--history-file", hist)
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, hist)
}

func TestHistoryCommand(t *testing.T) {
	hist := filepath.Join(t.TempDir(), "hist")
	p1, p2 := "/src/one", "/src/two"
	require.NoError(t, history.Save(hist, history.History{
		history.NewSnapshot("01/01/2026 10:00:00", &p1, []history.FileRecord{{Path: "/src/one/a", Lines: 1200}}),
		history.NewSnapshot("02/01/2026 10:00:00", &p2, nil),
	}))

	code, stdout, _ := runCLI(t, "history", "--history-file", hist)
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "01/01/2026 10:00:00  /src/one  files=1 total=1,200", lines[0])

	code, stdout, _ = runCLI(t, "history", "--history-file", hist, "-p", p2, "-o", "json")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"search_path": "/src/two"`)
	assert.NotContains(t, stdout, "/src/one")

	code, stdout, _ = runCLI(t, "history", "--history-file", hist, "-o", "yaml")
	require.Equal(t, 0, code)
	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "/src/one", decoded[0]["search_path"])
	assert.Equal(t, 1200, decoded[0]["total"])

	code, _, _ = runCLI(t, "history", "--history-file", hist, "-o", "xml")
	assert.Equal(t, 2, code)
}
