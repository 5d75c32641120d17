package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"line-tracker/internal/history"
)

func TestFileLine(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).File(history.FileRecord{Path: "p/a.txt", Lines: 12})
	assert.Equal(t, "File: p/a.txt | Lines: 12\n", buf.String())
}

func TestScanSummary(t *testing.T) {
	var buf bytes.Buffer
	p := "proj"
	s := history.NewSnapshot("d", &p, []history.FileRecord{{Path: "a", Lines: 1234567}})

	New(&buf, false).Scan(s, 1500*time.Millisecond, "/home/u/.linecounter")
	out := buf.String()
	assert.Contains(t, out, "CURRENT SCAN")
	assert.Contains(t, out, "scan finished in 1.5s")
	assert.Contains(t, out, "total project lines: 1,234,567")
	assert.Contains(t, out, "log file exported to /home/u/.linecounter")
}

func TestAnalysisWithGrowth(t *testing.T) {
	var buf bytes.Buffer
	p := "proj"
	prior := history.NewSnapshot("01/01/2026 00:00:00", &p, nil)
	cur := history.NewSnapshot("02/01/2026 00:00:00", &p, []history.FileRecord{{Path: "a", Lines: 8}})
	res := history.Result{LinesDif: 3, FilesDif: []history.FileDelta{{Path: "proj/a.txt", LinesDif: 3}}, Prior: &prior}

	New(&buf, false).Analysis(res, cur)
	out := buf.String()
	assert.Contains(t, out, "previous scan: 01/01/2026 00:00:00")
	assert.Contains(t, out, "lines changed since last update: 3\n")
	assert.Contains(t, out, "percentage of codebase affected since last scan: 37.5%")
	assert.Contains(t, out, "proj/a.txt +3\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestAnalysisFirstScan(t *testing.T) {
	var buf bytes.Buffer
	cur := history.NewSnapshot("d", nil, nil)

	New(&buf, false).Analysis(history.Result{}, cur)
	out := buf.String()
	assert.Contains(t, out, "no previous scan of this path")
	assert.Contains(t, out, "percentage of codebase affected since last scan: 0%")
	assert.Contains(t, out, "No files changed")
}

func TestFileHistory(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).FileHistory([]history.FileHistory{{
		Path: "p/a",
		Changes: []history.FileChange{
			{From: "d1", To: "d2", LinesDif: 1200},
			{From: "d2", To: "d3", LinesDif: -2},
		},
	}})
	out := buf.String()
	assert.Contains(t, out, "p/a\n    d1 - 1,200 lines added\n    d2 - 2 lines removed\n")
}

func TestPatchColouring(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Patch("--- a\n+++ b\n@@ -1 +1 @@\n-x\t1\n+x\t2\n")
	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "+x\t2")

	buf.Reset()
	New(&buf, false).Patch("")
	assert.Contains(t, buf.String(), "listings are identical")
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0", FormatPercent(0))
	assert.Equal(t, "37.5", FormatPercent(37.5))
	assert.Equal(t, "33.33333", FormatPercent(100.0/3))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "2.0s", FormatDuration(2*time.Second))
	assert.Equal(t, "1m5s", FormatDuration(65*time.Second))
}

func TestSnapshots(t *testing.T) {
	var buf bytes.Buffer
	p := "proj"
	New(&buf, false).Snapshots(history.History{
		history.NewSnapshot("01/01/2026 10:00:00", &p, []history.FileRecord{{Path: "proj/a", Lines: 2500}}),
		history.NewSnapshot("02/01/2026 10:00:00", nil, nil),
	})
	assert.Equal(t,
		"01/01/2026 10:00:00  proj  files=1 total=2,500\n"+
			"02/01/2026 10:00:00  <none>  files=0 total=0\n",
		buf.String())

	buf.Reset()
	New(&buf, false).Snapshots(nil)
	assert.Equal(t, "No scans recorded\n", buf.String())
}
