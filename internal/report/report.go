// Package report renders scan progress and results for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"line-tracker/internal/history"
)

const rule = "================================="

// Renderer writes human-readable output to w.
type Renderer struct {
	w      io.Writer
	title  *color.Color
	added  *color.Color
	remove *color.Color
	muted  *color.Color
}

// New creates a renderer. Colour is only emitted when useColor is set.
func New(w io.Writer, useColor bool) *Renderer {
	r := &Renderer{
		w:      w,
		title:  color.New(color.FgCyan, color.Bold),
		added:  color.New(color.FgGreen),
		remove: color.New(color.FgRed),
		muted:  color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{r.title, r.added, r.remove, r.muted} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// File prints the progress line for one counted file.
func (r *Renderer) File(rec history.FileRecord) {
	fmt.Fprintf(r.w, "File: %s | Lines: %d\n", rec.Path, rec.Lines)
}

// Scan prints the summary of the finished scan.
func (r *Renderer) Scan(s history.Snapshot, elapsed time.Duration, historyPath string) {
	r.header("CURRENT SCAN")
	fmt.Fprintf(r.w, "scan finished in %s\n", FormatDuration(elapsed))
	fmt.Fprintf(r.w, "files scanned: %s\n", humanize.Comma(int64(len(s.Items))))
	fmt.Fprintf(r.w, "total project lines: %s\n", humanize.Comma(int64(s.Total)))
	fmt.Fprintf(r.w, "log file exported to %s\n", historyPath)
	fmt.Fprintln(r.w, rule)
}

// Analysis prints the comparison against the prior scan.
func (r *Renderer) Analysis(res history.Result, current history.Snapshot) {
	r.header("HISTORY ANALYSIS")
	if res.Prior == nil {
		fmt.Fprintln(r.w, r.muted.Sprint("no previous scan of this path"))
	} else {
		fmt.Fprintf(r.w, "previous scan: %s\n", res.Prior.Date)
	}
	fmt.Fprintf(r.w, "lines changed since last update: %s\n", r.signed(res.LinesDif))
	fmt.Fprintf(r.w, "percentage of codebase affected since last scan: %s%%\n",
		FormatPercent(res.PercentAffected(current.Total)))
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "files grown:")
	fmt.Fprintln(r.w, "---------------------------------")
	if len(res.FilesDif) == 0 {
		fmt.Fprintln(r.w, "No files changed")
	}
	for _, d := range res.FilesDif {
		fmt.Fprintf(r.w, "%s %s\n", d.Path, r.added.Sprintf("+%s", humanize.Comma(int64(d.LinesDif))))
	}
	fmt.Fprintln(r.w, rule)
}

// FileHistory prints every recorded change per file.
func (r *Renderer) FileHistory(files []history.FileHistory) {
	r.header("FILES HISTORY")
	if len(files) == 0 {
		fmt.Fprintln(r.w, "No files changed")
	}
	for _, fh := range files {
		fmt.Fprintln(r.w, fh.Path)
		for _, ch := range fh.Changes {
			fmt.Fprintf(r.w, "    %s - %s\n", ch.From, r.change(ch.LinesDif))
		}
	}
	fmt.Fprintln(r.w, rule)
}

// Snapshots prints one summary line per stored scan, oldest first.
func (r *Renderer) Snapshots(h history.History) {
	if len(h) == 0 {
		fmt.Fprintln(r.w, "No scans recorded")
		return
	}
	for _, s := range h {
		path := s.Path()
		if s.SearchPath == nil {
			path = r.muted.Sprint("<none>")
		}
		fmt.Fprintf(r.w, "%s  %s  files=%s total=%s\n",
			r.muted.Sprint(s.Date), path,
			humanize.Comma(int64(len(s.Items))), humanize.Comma(int64(s.Total)))
	}
}

// Patch prints a unified listing diff.
func (r *Renderer) Patch(body string) {
	r.header("LISTING DIFF")
	if body == "" {
		fmt.Fprintln(r.w, "listings are identical")
		fmt.Fprintln(r.w, rule)
		return
	}
	for _, ln := range strings.SplitAfter(body, "\n") {
		switch {
		case ln == "":
		case strings.HasPrefix(ln, "+++"), strings.HasPrefix(ln, "---"), strings.HasPrefix(ln, "@@"):
			r.muted.Fprint(r.w, ln)
		case strings.HasPrefix(ln, "+"):
			r.added.Fprint(r.w, ln)
		case strings.HasPrefix(ln, "-"):
			r.remove.Fprint(r.w, ln)
		default:
			fmt.Fprint(r.w, ln)
		}
	}
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(r.w)
	}
	fmt.Fprintln(r.w, rule)
}

func (r *Renderer) header(name string) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, r.title.Sprint(name))
	fmt.Fprintln(r.w, "---------------------------------")
}

func (r *Renderer) signed(n int) string {
	s := humanize.Comma(int64(n))
	switch {
	case n > 0:
		return r.added.Sprint(s)
	case n < 0:
		return r.remove.Sprint(s)
	}
	return s
}

func (r *Renderer) change(n int) string {
	if n > 0 {
		return r.added.Sprintf("%s lines added", humanize.Comma(int64(n)))
	}
	return r.remove.Sprintf("%s lines removed", humanize.Comma(int64(-n)))
}

// FormatPercent rounds p to five decimals and drops trailing zeros.
func FormatPercent(p float64) string {
	if p == 0 {
		return "0"
	}
	return strconv.FormatFloat(math.Round(p*1e5)/1e5, 'f', -1, 64)
}

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
