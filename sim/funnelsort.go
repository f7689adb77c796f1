// sim/funnelsort.go
package sim

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/funnel-sim/funnel-sim/sim/funnel"
	"github.com/funnel-sim/funnel-sim/sim/trace"
)

// ErrInconsistentTree reports that the root could not be refilled although
// fewer than n elements reached the output. Leaves hold exactly n elements by
// construction, so this only happens if the fill protocol is broken.
var ErrInconsistentTree = errors.New("funnel tree ran dry before all elements were emitted")

// Partition splits input into exactly parts contiguous chunks of
// ceil(n/parts) elements and sorts each chunk ascending. Trailing chunks may
// be shorter or empty. input is not modified.
func Partition(input []int, parts int) [][]int {
	if parts < 1 {
		panic(fmt.Sprintf("Partition: parts must be >= 1, got %d", parts))
	}
	n := len(input)
	size := (n + parts - 1) / parts
	chunks := make([][]int, parts)
	for i := range chunks {
		lo := min(i*size, n)
		hi := min(lo+size, n)
		chunk := make([]int, hi-lo)
		copy(chunk, input[lo:hi])
		slices.Sort(chunk)
		chunks[i] = chunk
	}
	return chunks
}

// Engine simulates a funnel sort over one input array and exposes the run as
// a lazy sequence of frames.
//
// Thread-safety: NOT thread-safe. Each Frames() sequence must be consumed from
// a single goroutine.
type Engine struct {
	cfg   Config
	input []int
	err   error
}

// NewEngine creates an Engine for input. The input is copied.
func NewEngine(input []int, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid funnel config: %w", err)
	}
	in := make([]int, len(input))
	copy(in, input)
	return &Engine{cfg: cfg, input: in}, nil
}

// Config returns the funnel shape the engine runs with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Frames returns the frame sequence of a run. Every call starts a fresh run
// from the same input, so the sequence can be replayed by ranging again.
// Breaking out of the range loop abandons the run.
func (e *Engine) Frames() iter.Seq[trace.Frame] {
	return func(yield func(trace.Frame) bool) {
		r := &run{cfg: e.cfg, input: e.input, yield: yield}
		e.err = r.execute()
	}
}

// Err returns the error that ended the most recent run early, if any.
// A run abandoned by its consumer is not an error.
func (e *Engine) Err() error {
	return e.err
}

// Generate runs the funnel sort over input and collects every frame.
func Generate(input []int, cfg Config) (*trace.Trace, error) {
	e, err := NewEngine(input, cfg)
	if err != nil {
		return nil, err
	}
	st := trace.NewTrace(input)
	for f := range e.Frames() {
		st.Record(f)
	}
	if err := e.Err(); err != nil {
		return st, err
	}
	return st, nil
}

// run holds the live state of one simulation. It is the sole owner of root.
type run struct {
	cfg    Config
	input  []int
	root   *funnel.Node
	output []int
	seq    int
	yield  func(trace.Frame) bool
}

// execute drives the whole run. It returns nil both on completion and when
// the consumer stops early.
func (r *run) execute() error {
	r.root = funnel.Build(r.cfg.Depth, r.cfg.BufferCapacity)
	funnel.SeedLeaves(r.root, Partition(r.input, r.cfg.Leaves()))
	return r.drain()
}

// drain emits the init frame and pulls every element of the seeded root into
// the output.
func (r *run) drain() error {
	n := len(r.input)
	leaves := r.cfg.Leaves()
	logrus.Infof("Starting funnel sort: %d values, %d leaves, buffer capacity %d", n, leaves, r.cfg.BufferCapacity)

	initial := make([]trace.Slot, n)
	for i, v := range r.input {
		initial[i] = trace.Filled(v)
	}
	if !r.emit(trace.Frame{
		Kind:        trace.KindInit,
		Description: fmt.Sprintf("Initial division into base chunks: %d values split into %d sorted runs for the leaf buffers.", n, leaves),
		Array:       initial,
	}) {
		return nil
	}

	for len(r.output) < n {
		if r.root.Buffer.Empty() && !r.fill(r.root) {
			return nil
		}
		v, ok := r.root.Buffer.Shift()
		if !ok {
			logrus.Errorf("Root buffer empty after fill with %d of %d values emitted", len(r.output), n)
			return fmt.Errorf("%w: %d of %d emitted", ErrInconsistentTree, len(r.output), n)
		}
		r.output = append(r.output, v)
		if !r.emit(trace.Frame{
			Kind:        trace.KindOutput,
			Description: fmt.Sprintf("Moving element %d to final sorted array.", v),
			Node:        r.root.ID,
			Value:       trace.Moved(v),
			Highlighted: []int{len(r.output) - 1},
		}) {
			return nil
		}
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	r.emit(trace.Frame{
		Kind:        trace.KindDone,
		Description: fmt.Sprintf("Sorting complete: the %d-funnel merged all input streams.", leaves),
		Highlighted: all,
	})
	logrus.Infof("Funnel sort complete: %d values in %d frames", n, r.seq)
	return nil
}

// fill tops up node's buffer from its children, recursing into any child whose
// buffer is empty. It returns false once the consumer has stopped the sequence.
func (r *run) fill(node *funnel.Node) bool {
	node.Active = true
	if !r.emit(trace.Frame{
		Kind:        trace.KindActivate,
		Description: fmt.Sprintf("Filling buffer at %s...", node.ID),
		Node:        node.ID,
	}) {
		return false
	}

	for !node.Buffer.Full() {
		switch node.Kind {
		case funnel.KindInput:
			// Leaves are seeded once; a short leaf is exhausted, not refillable.
			node.Active = false
			return true
		case funnel.KindMerger:
			merged, ok := r.mergeOne(node)
			if !ok {
				return false
			}
			if !merged {
				node.Active = false
				return true
			}
		}
	}
	node.Active = false
	return true
}

// mergeOne moves the smaller child front into node's buffer. merged is false
// when both children are exhausted; ok is false once the consumer has stopped.
func (r *run) mergeOne(node *funnel.Node) (merged, ok bool) {
	if node.Left.Buffer.Empty() && !r.fill(node.Left) {
		return false, false
	}
	if node.Right.Buffer.Empty() && !r.fill(node.Right) {
		return false, false
	}

	src := pickSource(node.Left, node.Right)
	if src == nil {
		return false, true
	}
	v, _ := src.Buffer.Shift()
	node.Buffer.Push(v)
	return true, r.emit(trace.Frame{
		Kind:        trace.KindMerge,
		Description: fmt.Sprintf("Merging element %d into buffer %s.", v, node.ID),
		Node:        node.ID,
		Value:       trace.Moved(v),
	})
}

// pickSource returns the child with the smaller front, or nil if both are
// empty. Ties go to the left child.
func pickSource(left, right *funnel.Node) *funnel.Node {
	lv, lok := left.Buffer.Front()
	rv, rok := right.Buffer.Front()
	switch {
	case lok && (!rok || lv <= rv):
		return left
	case rok:
		return right
	default:
		return nil
	}
}

// emit stamps f with the current run state and hands it to the consumer.
// Array defaults to the output view and Highlighted to empty.
func (r *run) emit(f trace.Frame) bool {
	f.Seq = r.seq
	f.Merged = len(r.output)
	f.Tree = r.root.Clone()
	if f.Array == nil {
		f.Array = r.outputView()
	}
	if f.Highlighted == nil {
		f.Highlighted = []int{}
	}
	r.seq++
	logrus.Debugf("[frame %05d] %-8s %s", f.Seq, f.Kind, f.Description)
	return r.yield(f)
}

// outputView is the array with committed output in front and placeholders after.
func (r *run) outputView() []trace.Slot {
	view := make([]trace.Slot, len(r.input))
	for i, v := range r.output {
		view[i] = trace.Filled(v)
	}
	return view
}
