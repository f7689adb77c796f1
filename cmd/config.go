package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/funnel-sim/funnel-sim/sim"
	"github.com/funnel-sim/funnel-sim/sim/trace"
)

// RunConfig represents a YAML run config file.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Seed   int64         `yaml:"seed"`
	Input  sim.InputSpec `yaml:"input"`
	Values []int         `yaml:"values"` // explicit input; when set, Input is ignored
	Funnel sim.Config    `yaml:"funnel"`
}

// defaultRunConfig mirrors the flag defaults.
func defaultRunConfig() RunConfig {
	return RunConfig{
		Seed:   42,
		Input:  sim.DefaultInputSpec(),
		Funnel: sim.DefaultConfig(),
	}
}

// loadRunConfig parses a YAML run config on top of the defaults.
// Uses strict field checking: typos must cause errors.
func loadRunConfig(path string) (RunConfig, error) {
	rc := defaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return rc, fmt.Errorf("read run config %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rc); err != nil {
		return rc, fmt.Errorf("parse run config %s: %w", path, err)
	}
	return rc, nil
}

// resolveRunConfig loads --config when given, then applies every flag that was
// set explicitly on cmd.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	rc := defaultRunConfig()
	if configPath != "" {
		var err error
		if rc, err = loadRunConfig(configPath); err != nil {
			return rc, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		rc.Seed = seed
	}
	if flags.Changed("size") {
		rc.Input.Size = inputSize
	}
	if flags.Changed("min") {
		rc.Input.Min = minValue
	}
	if flags.Changed("max") {
		rc.Input.Max = maxValue
	}
	if flags.Changed("pattern") {
		rc.Input.Pattern = sim.InputPattern(inputPattern)
	}
	if flags.Changed("values") {
		rc.Values = values
	}
	if flags.Changed("depth") {
		rc.Funnel.Depth = depth
	}
	if flags.Changed("buffer-capacity") {
		rc.Funnel.BufferCapacity = bufferCapacity
	}

	if err := rc.Funnel.Validate(); err != nil {
		return rc, err
	}
	if len(rc.Values) == 0 {
		if err := rc.Input.Validate(); err != nil {
			return rc, err
		}
	}
	return rc, nil
}

// resolveInput returns the explicit values, or generates an input from the seed.
func resolveInput(rc RunConfig) ([]int, error) {
	if len(rc.Values) > 0 {
		return rc.Values, nil
	}
	return sim.GenerateInput(rc.Input, sim.NewPartitionedRNG(sim.NewSimulationKey(rc.Seed)))
}

// buildTrace resolves the input and collects the full frame trace.
func buildTrace(rc RunConfig) (*trace.Trace, error) {
	input, err := resolveInput(rc)
	if err != nil {
		return nil, err
	}
	return sim.Generate(input, rc.Funnel)
}
