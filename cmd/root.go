package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/funnel-sim/funnel-sim/sim"
)

var (
	// CLI flags shared by run and explain
	seed           int64  // Seed for random input generation
	logLevel       string // Log verbosity level
	configPath     string // Optional YAML run config
	inputSize      int    // Number of generated values
	minValue       int    // Smallest generated value
	maxValue       int    // Largest generated value
	inputPattern   string // Shape of the generated input
	values         []int  // Explicit input; overrides generation
	depth          int    // Merger levels above the leaves
	bufferCapacity int    // Capacity of merger buffers
	frameIndex     int    // Frame to show (-1 = all frames)

	// CLI flags for run output
	outputFormat string // text, json or yaml
	showSummary  bool   // Print the trace summary table
	noColor      bool   // Disable colored text output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "funnel-sim",
	Short: "Step-by-step simulator for cache-oblivious funnel sort",
}

// runCmd generates the frame trace using parameters from CLI flags and config
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the funnel sort simulation and print its frames",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if noColor {
			color.NoColor = true
		}

		rc, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		st, err := buildTrace(rc)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		opts := outputOptions{Format: outputFormat, Frame: frameIndex, Summary: showSummary}
		if err := writeTrace(os.Stdout, st, opts); err != nil {
			logrus.Fatalf("Unable to write trace: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// setupLogging applies the --log level.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addInputFlags registers the input and funnel flags on cmd.
func addInputFlags(cmd *cobra.Command) {
	defIn := sim.DefaultInputSpec()
	defCfg := sim.DefaultConfig()

	cmd.Flags().StringVar(&configPath, "config", "", "YAML run config; flags set explicitly override it")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random input generation")
	cmd.Flags().IntVar(&inputSize, "size", defIn.Size, "Number of generated input values")
	cmd.Flags().IntVar(&minValue, "min", defIn.Min, "Smallest generated value")
	cmd.Flags().IntVar(&maxValue, "max", defIn.Max, "Largest generated value")
	cmd.Flags().StringVar(&inputPattern, "pattern", string(defIn.Pattern), "Input pattern (uniform, few-unique, sorted, reversed)")
	cmd.Flags().IntSliceVar(&values, "values", nil, "Comma-separated explicit input; disables generation")
	cmd.Flags().IntVar(&depth, "depth", defCfg.Depth, "Funnel depth (leaves = 2^depth)")
	cmd.Flags().IntVar(&bufferCapacity, "buffer-capacity", defCfg.BufferCapacity, "Capacity of merger buffers")
	cmd.Flags().IntVar(&frameIndex, "frame", -1, "Frame index to show; out-of-range values are clamped (-1 = all)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addInputFlags(runCmd)
	runCmd.Flags().StringVar(&outputFormat, "format", string(formatText), "Output format (text, json, yaml)")
	runCmd.Flags().BoolVar(&showSummary, "summary", false, "Print a summary table after the frames")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	addInputFlags(explainCmd)
	addExplainFlags(explainCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(explainCmd)
}
