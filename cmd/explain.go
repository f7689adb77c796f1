package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/funnel-sim/funnel-sim/sim/narrate"
)

var (
	// CLI flags for the narration endpoint
	narratorModel   string        // Chat model name
	narratorBaseURL string        // OpenAI-compatible base URL
	narrateTimeout  time.Duration // Per-request timeout
)

// explainCmd narrates a single frame of a run
var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain one frame of the simulation in plain language",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		rc, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		st, err := buildTrace(rc)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		f := st.Seek(max(frameIndex, 0))

		ctx, cancel := context.WithTimeout(cmd.Context(), narrateTimeout)
		defer cancel()
		in := narrate.ExplainOrFallback(ctx, newNarrator(os.Getenv("OPENAI_API_KEY")), f.Description)

		fmt.Printf("[%04d] %s\n\n%s\n%s\n", f.Seq, f.Description, in.Title, in.Content)
	},
}

// newNarrator returns nil when no endpoint is configured, which selects the fallback.
func newNarrator(apiKey string) narrate.Narrator {
	if apiKey == "" && narratorBaseURL == "" {
		logrus.Info("OPENAI_API_KEY not set and no --base-url given; using static insight")
		return nil
	}
	return narrate.NewOpenAINarrator(apiKey, narratorModel, narratorBaseURL)
}

func addExplainFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&narratorModel, "model", narrate.DefaultModel, "Chat model used for narration")
	cmd.Flags().StringVar(&narratorBaseURL, "base-url", "", "OpenAI-compatible API base URL (default OpenAI)")
	cmd.Flags().DurationVar(&narrateTimeout, "timeout", 30*time.Second, "Narration request timeout")
}
