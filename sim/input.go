package sim

import (
	"fmt"
	"slices"
)

// InputPattern selects how GenerateInput shapes the array.
type InputPattern string

const (
	// PatternUniform draws every value uniformly from [Min, Max].
	PatternUniform InputPattern = "uniform"
	// PatternFewUnique draws every value from a small set of distinct keys,
	// producing many ties between the merge fronts.
	PatternFewUnique InputPattern = "few-unique"
	// PatternSorted is a uniform draw sorted ascending.
	PatternSorted InputPattern = "sorted"
	// PatternReversed is a uniform draw sorted descending.
	PatternReversed InputPattern = "reversed"
)

// fewUniqueKeys is the size of the key set used by PatternFewUnique.
const fewUniqueKeys = 4

var validPatterns = map[InputPattern]bool{
	PatternUniform:   true,
	PatternFewUnique: true,
	PatternSorted:    true,
	PatternReversed:  true,
	"":               true, // empty defaults to uniform
}

// IsValidPattern returns true if the given string names a known input pattern.
func IsValidPattern(p string) bool {
	return validPatterns[InputPattern(p)]
}

// InputSpec describes a randomly generated input array.
type InputSpec struct {
	Size    int          `yaml:"size"`
	Min     int          `yaml:"min"`
	Max     int          `yaml:"max"`
	Pattern InputPattern `yaml:"pattern"`
}

// DefaultInputSpec matches the visualizer's default: 16 values in [1, 100].
func DefaultInputSpec() InputSpec {
	return InputSpec{Size: 16, Min: 1, Max: 100, Pattern: PatternUniform}
}

// Validate reports the first invalid field.
func (s InputSpec) Validate() error {
	if s.Size < 0 {
		return fmt.Errorf("input size must be >= 0, got %d", s.Size)
	}
	if s.Min > s.Max {
		return fmt.Errorf("input range is empty: min %d > max %d", s.Min, s.Max)
	}
	if !IsValidPattern(string(s.Pattern)) {
		return fmt.Errorf("unknown input pattern %q", s.Pattern)
	}
	return nil
}

// GenerateInput draws an input array according to spec.
// The same spec and RNG key always produce the same array.
func GenerateInput(spec InputSpec, rng *PartitionedRNG) ([]int, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	values := rng.ForSubsystem(SubsystemInput)
	span := spec.Max - spec.Min + 1
	out := make([]int, spec.Size)

	switch spec.Pattern {
	case PatternFewUnique:
		keys := drawKeys(spec, rng)
		for i := range out {
			out[i] = keys[values.Intn(len(keys))]
		}
	default:
		for i := range out {
			out[i] = spec.Min + values.Intn(span)
		}
	}

	switch spec.Pattern {
	case PatternSorted:
		slices.Sort(out)
	case PatternReversed:
		slices.Sort(out)
		slices.Reverse(out)
	}
	return out, nil
}

// drawKeys picks the few-unique key set from the keys subsystem, so it depends
// only on the seed and the value range, never on Size.
func drawKeys(spec InputSpec, rng *PartitionedRNG) []int {
	span := spec.Max - spec.Min + 1
	keyRNG := rng.ForSubsystem(SubsystemKeys)
	keys := make([]int, fewUniqueKeys)
	for i := range keys {
		keys[i] = spec.Min + keyRNG.Intn(span)
	}
	return keys
}
