package history

func samePath(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Matching returns the snapshots of h recorded for searchPath, in order.
func Matching(h History, searchPath *string) History {
	out := make(History, 0, len(h))
	for _, s := range h {
		if samePath(s.SearchPath, searchPath) {
			out = append(out, s)
		}
	}
	return out
}

// Latest returns the most recent snapshot of h for searchPath.
func Latest(h History, searchPath *string) (Snapshot, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if samePath(h[i].SearchPath, searchPath) {
			return h[i], true
		}
	}
	return Snapshot{}, false
}

// Diff compares current with the latest snapshot in h for the same search
// path. h must not already contain current.
//
// Only files that exist in both snapshots and grew are listed in FilesDif;
// shrinking, unchanged and new files are left out.
func Diff(current Snapshot, h History) Result {
	prior, ok := Latest(h, current.SearchPath)
	if !ok {
		return Result{LinesDif: current.Total, FilesDif: []FileDelta{}}
	}
	before := indexByPath(prior.Items)
	files := make([]FileDelta, 0)
	for _, it := range current.Items {
		old, ok := before[it.Path]
		if ok && it.Lines > old {
			files = append(files, FileDelta{Path: it.Path, LinesDif: it.Lines - old})
		}
	}
	return Result{
		LinesDif: current.Total - prior.Total,
		FilesDif: files,
		Prior:    &prior,
	}
}

// Growth sums the per-file growth in r.
func (r Result) Growth() int {
	n := 0
	for _, d := range r.FilesDif {
		n += d.LinesDif
	}
	return n
}

// PercentAffected is the share of total made up by the growth of tracked
// files, in percent. It is 0 when either figure is 0.
func (r Result) PercentAffected(total int) float64 {
	g := r.Growth()
	if total == 0 || g == 0 {
		return 0
	}
	return float64(g) / float64(total) * 100
}

// FileHistories walks every consecutive pair of scans for current's search
// path (earlier history first, current last) and records each file whose
// count changed between the two. Paths appear in order of their first change.
func FileHistories(current Snapshot, h History) []FileHistory {
	scans := Matching(h, current.SearchPath)
	scans = append(scans, current)

	var out []FileHistory
	pos := make(map[string]int)
	for i := 1; i < len(scans); i++ {
		prev, curr := scans[i-1], scans[i]
		before := indexByPath(prev.Items)
		for _, it := range curr.Items {
			old, ok := before[it.Path]
			if !ok || old == it.Lines {
				continue
			}
			ch := FileChange{From: prev.Date, To: curr.Date, LinesDif: it.Lines - old}
			idx, seen := pos[it.Path]
			if !seen {
				idx = len(out)
				pos[it.Path] = idx
				out = append(out, FileHistory{Path: it.Path})
			}
			out[idx].Changes = append(out[idx].Changes, ch)
		}
	}
	return out
}

func indexByPath(items []FileRecord) map[string]int {
	m := make(map[string]int, len(items))
	for _, it := range items {
		m[it.Path] = it.Lines
	}
	return m
}
