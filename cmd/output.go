package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/funnel-sim/funnel-sim/sim/funnel"
	"github.com/funnel-sim/funnel-sim/sim/trace"
)

type format string

const (
	formatText format = "text"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

// outputOptions controls writeTrace.
type outputOptions struct {
	Format  string
	Frame   int // -1 = all frames
	Summary bool
}

var kindColors = map[trace.FrameKind]*color.Color{
	trace.KindInit:     color.New(color.FgBlue),
	trace.KindActivate: color.New(color.FgYellow),
	trace.KindMerge:    color.New(color.FgCyan),
	trace.KindOutput:   color.New(color.FgGreen),
	trace.KindDone:     color.New(color.FgGreen, color.Bold),
}

// writeTrace writes the whole trace, or a single seeked frame, in the
// requested format.
func writeTrace(w io.Writer, st *trace.Trace, opts outputOptions) error {
	var payload any = st
	frames := st.Frames
	if opts.Frame >= 0 {
		f := st.Seek(opts.Frame)
		payload = f
		frames = []trace.Frame{f}
	}

	switch format(opts.Format) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		for _, f := range frames {
			writeFrameLine(w, f)
		}
		if len(frames) == 1 {
			writeTree(w, frames[0].Tree, 0)
		}
		if opts.Summary {
			writeSummary(w, trace.Summarize(st))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// writeFrameLine prints one frame as "[seq] kind merged=k description" plus its array view.
func writeFrameLine(w io.Writer, f trace.Frame) {
	label := fmt.Sprintf("%-8s", f.Kind)
	if c, ok := kindColors[f.Kind]; ok {
		label = c.Sprint(label)
	}
	fmt.Fprintf(w, "[%04d] %s merged=%-3d %s\n", f.Seq, label, f.Merged, f.Description)
	fmt.Fprintf(w, "       array: %s\n", formatArray(f.Array, f.Highlighted))
}

// formatArray renders placeholders as "_" and highlighted indices as "*v".
func formatArray(view []trace.Slot, highlighted []int) string {
	hl := make(map[int]bool, len(highlighted))
	for _, i := range highlighted {
		hl[i] = true
	}
	parts := make([]string, len(view))
	for i, s := range view {
		switch {
		case !s.Filled:
			parts[i] = "_"
		case hl[i]:
			parts[i] = fmt.Sprintf("*%d", s.Value)
		default:
			parts[i] = fmt.Sprint(s.Value)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// writeTree prints the funnel tree indented by level, one buffer per line.
func writeTree(w io.Writer, n *funnel.Node, level int) {
	if n == nil {
		return
	}
	marker := ""
	if n.Active {
		marker = " (active)"
	}
	fmt.Fprintf(w, "%s%s %s %s%s\n", strings.Repeat("  ", level), n.ID, n.Kind, n.Buffer.String(), marker)
	switch n.Kind {
	case funnel.KindMerger:
		writeTree(w, n.Left, level+1)
		writeTree(w, n.Right, level+1)
	}
}

func writeSummary(w io.Writer, s *trace.TraceSummary) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"kind", "frames"})
	for _, k := range trace.Kinds {
		tbl.AppendRow(table.Row{string(k), s.KindCounts[k]})
	}
	tbl.AppendFooter(table.Row{"total", s.TotalFrames})
	fmt.Fprintln(w, tbl.Render())
	fmt.Fprintf(w, "output: %d  peak resident: %d  hottest node: %s (%d frames)\n",
		s.OutputCount, s.PeakResident, s.HottestNode, s.NodeFrames[s.HottestNode])
}
