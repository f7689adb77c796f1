package trace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/funnel-sim/funnel-sim/sim/funnel"
)

func TestTrace_Record_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewTrace([]int{3, 1})

	// WHEN multiple frames are recorded
	st.Record(Frame{Seq: 0, Kind: KindInit})
	st.Record(Frame{Seq: 1, Kind: KindActivate, Node: "root"})
	st.Record(Frame{Seq: 2, Kind: KindDone})

	// THEN order is preserved
	require.Equal(t, 3, st.Len())
	for i := 0; i < st.Len(); i++ {
		f, ok := st.At(i)
		require.True(t, ok)
		assert.Equal(t, i, f.Seq)
	}
	final, ok := st.Final()
	require.True(t, ok)
	assert.Equal(t, KindDone, final.Kind)
}

func TestNewTrace_CopiesInput(t *testing.T) {
	input := []int{5, 6}
	st := NewTrace(input)
	input[0] = 0
	assert.Equal(t, []int{5, 6}, st.Input)
}

func TestTrace_At_OutOfRange(t *testing.T) {
	st := NewTrace(nil)
	st.Record(Frame{Seq: 0})

	_, ok := st.At(-1)
	assert.False(t, ok)
	_, ok = st.At(1)
	assert.False(t, ok)
}

func TestTrace_Seek_ClampsToRange(t *testing.T) {
	st := NewTrace(nil)
	for i := 0; i < 4; i++ {
		st.Record(Frame{Seq: i})
	}

	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"before start", -10, 0},
		{"first", 0, 0},
		{"middle", 2, 2},
		{"last", 3, 3},
		{"past end", 99, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, st.Seek(tt.pos).Seq)
		})
	}
}

func TestTrace_EmptyAndNil(t *testing.T) {
	var nilTrace *Trace
	assert.Equal(t, 0, nilTrace.Len())
	_, ok := nilTrace.Final()
	assert.False(t, ok)
	assert.Equal(t, Frame{}, NewTrace(nil).Seek(3))
}

func TestSlot_JSON_PlaceholderIsNull(t *testing.T) {
	// GIVEN an array view with a committed value and a placeholder
	view := []Slot{Filled(0), {}}

	// WHEN encoded
	data, err := json.Marshal(view)
	require.NoError(t, err)

	// THEN placeholders are null and decoding restores them
	assert.JSONEq(t, `[0, null]`, string(data))
	var back []Slot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, view, back)
}

func TestSlot_YAML_PlaceholderIsNull(t *testing.T) {
	data, err := yaml.Marshal(map[string][]Slot{"array": {Filled(7), {}}})
	require.NoError(t, err)
	var generic map[string][]any
	require.NoError(t, yaml.Unmarshal(data, &generic))
	assert.Equal(t, []any{7, nil}, generic["array"])

	var back map[string][]Slot
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, []Slot{Filled(7), {}}, back["array"])
}

func TestFrame_YAML_RoundTrip(t *testing.T) {
	// GIVEN a merge frame with a placeholder and a seeded tree
	tree := funnel.Build(1, 2)
	funnel.SeedLeaves(tree, [][]int{{1}, {3}})
	st := NewTrace([]int{3, 1})
	st.Record(Frame{Seq: 0, Kind: KindMerge, Node: "root", Value: Moved(0), Array: []Slot{Filled(0), {}}, Highlighted: []int{}, Tree: tree})

	// WHEN the trace is written as YAML and read back
	data, err := yaml.Marshal(st)
	require.NoError(t, err)
	var back Trace
	require.NoError(t, yaml.Unmarshal(data, &back))

	// THEN the frame survives intact
	require.Equal(t, 1, back.Len())
	f := back.Frames[0]
	assert.Equal(t, []Slot{Filled(0), {}}, f.Array)
	require.NotNil(t, f.Value)
	assert.Equal(t, 0, *f.Value)
	assert.Equal(t, funnel.KindMerger, f.Tree.Kind)
	assert.Equal(t, []int{3}, f.Tree.Find("root-R").Buffer.Items)
}

func TestFrame_JSON_ValueOnlyWhenMoved(t *testing.T) {
	// GIVEN an activation frame and a merge frame moving 0
	activate, err := json.Marshal(Frame{Kind: KindActivate, Node: "root"})
	require.NoError(t, err)
	merge, err := json.Marshal(Frame{Kind: KindMerge, Node: "root", Value: Moved(0)})
	require.NoError(t, err)

	// THEN only the merge frame encodes a value
	var a, m map[string]any
	require.NoError(t, json.Unmarshal(activate, &a))
	require.NoError(t, json.Unmarshal(merge, &m))
	assert.NotContains(t, a, "value")
	assert.Equal(t, float64(0), m["value"])
}
