package sim

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInput_DefaultSpec_SixteenValuesInRange(t *testing.T) {
	// GIVEN the default spec
	spec := DefaultInputSpec()

	// WHEN an input is generated
	input, err := GenerateInput(spec, NewPartitionedRNG(NewSimulationKey(42)))
	require.NoError(t, err)

	// THEN it has 16 values within [1, 100]
	require.Len(t, input, 16)
	for _, v := range input {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 100)
	}
}

func TestGenerateInput_SameSeed_IdenticalInput(t *testing.T) {
	spec := InputSpec{Size: 64, Min: -10, Max: 10}
	a, err := GenerateInput(spec, NewPartitionedRNG(NewSimulationKey(123)))
	require.NoError(t, err)
	b, err := GenerateInput(spec, NewPartitionedRNG(NewSimulationKey(123)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateInput_DifferentSeeds_DifferentInput(t *testing.T) {
	spec := InputSpec{Size: 64, Min: 1, Max: 1000}
	a, err := GenerateInput(spec, NewPartitionedRNG(NewSimulationKey(100)))
	require.NoError(t, err)
	b, err := GenerateInput(spec, NewPartitionedRNG(NewSimulationKey(200)))
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "different seeds produced identical inputs")
}

func TestGenerateInput_Patterns(t *testing.T) {
	rngFor := func() *PartitionedRNG { return NewPartitionedRNG(NewSimulationKey(5)) }

	sorted, err := GenerateInput(InputSpec{Size: 32, Min: 1, Max: 100, Pattern: PatternSorted}, rngFor())
	require.NoError(t, err)
	assert.True(t, slices.IsSorted(sorted))

	reversed, err := GenerateInput(InputSpec{Size: 32, Min: 1, Max: 100, Pattern: PatternReversed}, rngFor())
	require.NoError(t, err)
	back := slices.Clone(reversed)
	slices.Reverse(back)
	assert.True(t, slices.IsSorted(back))
	assert.ElementsMatch(t, sorted, reversed, "sorted and reversed draw the same values")

	few, err := GenerateInput(InputSpec{Size: 200, Min: 1, Max: 100, Pattern: PatternFewUnique}, rngFor())
	require.NoError(t, err)
	distinct := map[int]bool{}
	for _, v := range few {
		distinct[v] = true
	}
	assert.LessOrEqual(t, len(distinct), fewUniqueKeys)
}

func TestGenerateInput_SingleValueRange(t *testing.T) {
	input, err := GenerateInput(InputSpec{Size: 5, Min: 7, Max: 7}, NewPartitionedRNG(NewSimulationKey(1)))
	require.NoError(t, err)
	assert.Equal(t, []int{7, 7, 7, 7, 7}, input)
}

func TestInputSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    InputSpec
		wantErr bool
	}{
		{"default", DefaultInputSpec(), false},
		{"empty size", InputSpec{Size: 0, Min: 1, Max: 1}, false},
		{"negative size", InputSpec{Size: -1, Min: 1, Max: 2}, true},
		{"inverted range", InputSpec{Size: 3, Min: 5, Max: 4}, true},
		{"unknown pattern", InputSpec{Size: 3, Min: 1, Max: 4, Pattern: "zigzag"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				_, genErr := GenerateInput(tt.spec, NewPartitionedRNG(NewSimulationKey(1)))
				assert.Error(t, genErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidPattern(t *testing.T) {
	tests := []struct {
		pattern string
		valid   bool
	}{
		{"uniform", true},
		{"few-unique", true},
		{"sorted", true},
		{"reversed", true},
		{"", true}, // empty defaults to uniform
		{"UNIFORM", false},
		{"random", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPattern(tt.pattern))
		})
	}
}

func TestConfig_Leaves(t *testing.T) {
	assert.Equal(t, 4, DefaultConfig().Leaves())
	assert.Equal(t, 1, Config{Depth: 0, BufferCapacity: 1}.Leaves())
	assert.Equal(t, 64, Config{Depth: MaxDepth, BufferCapacity: 1}.Leaves())
}
