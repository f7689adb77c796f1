// Package testutil provides shared test infrastructure for the funnel sort
// simulator. It consolidates trace invariant assertions used across sim/ and
// its sub-package tests.
package testutil

import (
	"slices"
	"testing"

	"github.com/funnel-sim/funnel-sim/sim/funnel"
	"github.com/funnel-sim/funnel-sim/sim/trace"
)

// AssertTraceInvariants checks every per-frame property a correct run must
// hold for the given input:
//   - frames are numbered 0..len-1 and start with init and end with done
//   - array views have length n
//   - every buffer is sorted and within capacity
//   - resident tree values plus committed output equal n
//   - the committed output is a non-decreasing prefix of the array view
//   - only merge and output frames carry a Value
//   - Merged never decreases and grows by exactly 1 on output frames
//   - the final array is the sorted permutation of the input
func AssertTraceInvariants(t *testing.T, input []int, frames []trace.Frame) {
	t.Helper()
	n := len(input)
	if len(frames) < 2 {
		t.Fatalf("expected at least init and done frames, got %d", len(frames))
	}
	if frames[0].Kind != trace.KindInit {
		t.Errorf("first frame kind = %s, want init", frames[0].Kind)
	}
	if last := frames[len(frames)-1]; last.Kind != trace.KindDone {
		t.Errorf("last frame kind = %s, want done", last.Kind)
	}

	prevMerged := 0
	for i, f := range frames {
		if f.Seq != i {
			t.Errorf("frame %d: seq = %d", i, f.Seq)
		}
		if len(f.Array) != n {
			t.Errorf("frame %d: array length %d, want %d", i, len(f.Array), n)
		}
		if f.Tree == nil {
			t.Fatalf("frame %d: nil tree", i)
		}
		f.Tree.Walk(func(node *funnel.Node) bool {
			if !slices.IsSorted(node.Buffer.Items) {
				t.Errorf("frame %d: buffer %s unsorted: %v", i, node.Buffer.ID, node.Buffer.Items)
			}
			if node.Buffer.Len() > node.Buffer.Capacity {
				t.Errorf("frame %d: buffer %s over capacity: %d > %d", i, node.Buffer.ID, node.Buffer.Len(), node.Buffer.Capacity)
			}
			return true
		})
		if got := f.Tree.Resident() + f.Merged; got != n {
			t.Errorf("frame %d (%s): resident %d + merged %d = %d, want %d", i, f.Kind, f.Tree.Resident(), f.Merged, got, n)
		}
		moves := f.Kind == trace.KindMerge || f.Kind == trace.KindOutput
		if moves != (f.Value != nil) {
			t.Errorf("frame %d (%s): value set = %v", i, f.Kind, f.Value != nil)
		}
		if f.Merged < prevMerged {
			t.Errorf("frame %d: merged decreased from %d to %d", i, prevMerged, f.Merged)
		}
		if f.Kind == trace.KindOutput && f.Merged != prevMerged+1 {
			t.Errorf("frame %d: output frame merged %d, want %d", i, f.Merged, prevMerged+1)
		}
		if f.Kind != trace.KindInit {
			assertOutputPrefix(t, i, f)
		}
		prevMerged = f.Merged
	}

	want := slices.Clone(input)
	slices.Sort(want)
	final := frames[len(frames)-1]
	got := make([]int, 0, n)
	for _, s := range final.Array {
		if !s.Filled {
			t.Fatalf("final frame has placeholder: %v", final.Array)
		}
		got = append(got, s.Value)
	}
	if !slices.Equal(got, want) {
		t.Errorf("final array = %v, want %v", got, want)
	}
	if final.Merged != n {
		t.Errorf("final merged = %d, want %d", final.Merged, n)
	}
}

func assertOutputPrefix(t *testing.T, i int, f trace.Frame) {
	t.Helper()
	prev := 0
	for j, s := range f.Array {
		if j < f.Merged {
			if !s.Filled {
				t.Errorf("frame %d: index %d below merged count is a placeholder", i, j)
			} else if j > 0 && s.Value < prev {
				t.Errorf("frame %d: output not sorted at index %d", i, j)
			}
			prev = s.Value
		} else if s.Filled {
			t.Errorf("frame %d: index %d beyond merged count %d is filled", i, j, f.Merged)
		}
	}
}
