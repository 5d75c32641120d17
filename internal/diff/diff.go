// Package diff renders the file listing of two snapshots as a classic
// unified patch using github.com/pmezard/go-difflib/difflib. Each line of a
// listing is "<path>\t<lines>", so added, removed and resized files show up
// as -/+ lines.
package diff

import (
	"fmt"
	"strconv"

	difflib "github.com/pmezard/go-difflib/difflib"

	"line-tracker/internal/history"
	"line-tracker/internal/sortutil"
)

// Options controls patch generation.
type Options struct {
	// Context is the number of unchanged listing lines around each hunk.
	// If 0, default to 3.
	Context int
}

// Listing produces a unified patch from prior to current. With no prior
// snapshot the whole current listing is shown as added. An empty string
// means both listings are identical.
func Listing(prior *history.Snapshot, current history.Snapshot, opt Options) (string, error) {
	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}
	from := "/dev/null"
	var a []string
	if prior != nil {
		from = label("prior", *prior)
		a = listingLines(prior.Items)
	}
	u := difflib.UnifiedDiff{
		A:        a,
		B:        listingLines(current.Items),
		FromFile: from,
		ToFile:   label("current", current),
		Context:  ctx,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("listing diff: %w", err)
	}
	return s, nil
}

func label(kind string, s history.Snapshot) string {
	return kind + " " + s.Date
}

func listingLines(items []history.FileRecord) []string {
	sorted := sortutil.ByKey(items, func(r history.FileRecord) string { return r.Path })
	out := make([]string, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, r.Path+"\t"+strconv.Itoa(r.Lines)+"\n")
	}
	return out
}
