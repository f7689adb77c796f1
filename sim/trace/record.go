// Package trace provides the frame records produced by a funnel sort run and
// the collected, seekable trace consumed by playback and rendering.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/funnel-sim/funnel-sim/sim/funnel"
)

// FrameKind identifies which emission point produced a frame.
type FrameKind string

const (
	// KindInit is the single initial frame after seeding the leaves.
	KindInit FrameKind = "init"
	// KindActivate marks a node entering its fill operation.
	KindActivate FrameKind = "activate"
	// KindMerge records one element moving from a child into its parent's buffer.
	KindMerge FrameKind = "merge"
	// KindOutput records one element pulled from the root into the sorted output.
	KindOutput FrameKind = "output"
	// KindDone is the completion frame.
	KindDone FrameKind = "done"
)

// Kinds lists every frame kind in emission-protocol order.
var Kinds = []FrameKind{KindInit, KindActivate, KindMerge, KindOutput, KindDone}

// Slot is one index of the array view: either a committed value or a placeholder.
type Slot struct {
	Value  int
	Filled bool
}

// Filled returns a slot holding v.
func Filled(v int) Slot {
	return Slot{Value: v, Filled: true}
}

// MarshalJSON encodes a placeholder as null.
func (s Slot) MarshalJSON() ([]byte, error) {
	if !s.Filled {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON decodes null as a placeholder.
func (s *Slot) UnmarshalJSON(data []byte) error {
	var v *int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*s = Slot{}
		return nil
	}
	*s = Filled(*v)
	return nil
}

// MarshalYAML encodes a placeholder as null.
func (s Slot) MarshalYAML() (any, error) {
	if !s.Filled {
		return nil, nil
	}
	return s.Value, nil
}

// UnmarshalYAML decodes null as a placeholder.
func (s *Slot) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*s = Slot{}
		return nil
	}
	var v int
	if err := value.Decode(&v); err != nil {
		return err
	}
	*s = Filled(v)
	return nil
}

// Moved returns v as a frame Value.
func Moved(v int) *int {
	return &v
}

// Frame is an immutable snapshot of the whole simulation at one step.
// Every frame owns its tree copy and slices; nothing is shared with the
// engine or with other frames.
type Frame struct {
	Seq         int          `json:"seq" yaml:"seq"`
	Kind        FrameKind    `json:"kind" yaml:"kind"`
	Description string       `json:"description" yaml:"description"`
	Node        string       `json:"node,omitempty" yaml:"node,omitempty"`   // node filled, merged into or pulled from; empty for init/done
	Value       *int         `json:"value,omitempty" yaml:"value,omitempty"` // value moved by merge/output frames; nil otherwise
	Array       []Slot       `json:"array" yaml:"array"`
	Highlighted []int        `json:"highlighted" yaml:"highlighted"`
	Merged      int          `json:"merged" yaml:"merged"`
	Tree        *funnel.Node `json:"tree" yaml:"tree"`
}
