package trace

// TraceSummary aggregates statistics from a Trace.
type TraceSummary struct {
	TotalFrames  int
	KindCounts   map[FrameKind]int
	OutputCount  int // elements committed to the sorted output
	PeakResident int // largest number of values held in the tree at any frame
	NodeFrames   map[string]int
	HottestNode  string // node ID touched by the most activate/merge frames; ties go to the smaller ID
}

// Summarize computes aggregate statistics from a Trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts: make(map[FrameKind]int),
		NodeFrames: make(map[string]int),
	}
	if t == nil {
		return summary
	}

	summary.TotalFrames = len(t.Frames)
	for _, f := range t.Frames {
		summary.KindCounts[f.Kind]++
		if f.Merged > summary.OutputCount {
			summary.OutputCount = f.Merged
		}
		if f.Tree != nil {
			if r := f.Tree.Resident(); r > summary.PeakResident {
				summary.PeakResident = r
			}
		}
		if f.Node != "" && (f.Kind == KindActivate || f.Kind == KindMerge) {
			summary.NodeFrames[f.Node]++
		}
	}

	best := 0
	for id, count := range summary.NodeFrames {
		if count > best || (count == best && id < summary.HottestNode) {
			best = count
			summary.HottestNode = id
		}
	}

	return summary
}
