package sim

import "fmt"

const (
	// DefaultDepth gives a 4-way funnel: two merge levels over four leaves.
	DefaultDepth = 2
	// DefaultBufferCapacity is the nominal capacity of every merger buffer.
	DefaultBufferCapacity = 8
	// MaxDepth bounds the tree at 64 leaves, beyond which traces stop being readable.
	MaxDepth = 6
)

// Config groups the funnel shape parameters. They are passed explicitly
// through construction and seeding so tests can vary them independently.
type Config struct {
	Depth          int `yaml:"depth"`           // levels of mergers above the leaves (leaves = 2^Depth)
	BufferCapacity int `yaml:"buffer_capacity"` // capacity of merger buffers; leaves are resized to their chunk
}

// DefaultConfig returns the 4-funnel with buffers of 8.
func DefaultConfig() Config {
	return Config{Depth: DefaultDepth, BufferCapacity: DefaultBufferCapacity}
}

// Leaves returns the number of input leaves, 2^Depth.
func (c Config) Leaves() int {
	return 1 << c.Depth
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Depth < 0 || c.Depth > MaxDepth {
		return fmt.Errorf("depth must be in [0, %d], got %d", MaxDepth, c.Depth)
	}
	if c.BufferCapacity < 1 {
		return fmt.Errorf("buffer capacity must be >= 1, got %d", c.BufferCapacity)
	}
	return nil
}
