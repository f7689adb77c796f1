package trace

// Trace is the full, finite, ordered frame sequence of one run.
// Playback selects positions in it; the trace itself has no notion of a
// current position.
type Trace struct {
	Input  []int   `json:"input" yaml:"input"`
	Frames []Frame `json:"frames" yaml:"frames"`
}

// NewTrace creates a Trace ready for recording frames for the given input.
func NewTrace(input []int) *Trace {
	in := make([]int, len(input))
	copy(in, input)
	return &Trace{
		Input:  in,
		Frames: make([]Frame, 0),
	}
}

// Record appends a frame.
func (t *Trace) Record(f Frame) {
	t.Frames = append(t.Frames, f)
}

// Len returns the number of frames.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Frames)
}

// At returns the frame at index i.
func (t *Trace) At(i int) (Frame, bool) {
	if i < 0 || i >= t.Len() {
		return Frame{}, false
	}
	return t.Frames[i], true
}

// Seek returns the frame at i clamped to the valid range.
// Returns the zero Frame for an empty trace.
func (t *Trace) Seek(i int) Frame {
	n := t.Len()
	if n == 0 {
		return Frame{}
	}
	return t.Frames[max(0, min(i, n-1))]
}

// Final returns the last frame.
func (t *Trace) Final() (Frame, bool) {
	return t.At(t.Len() - 1)
}
