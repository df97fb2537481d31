package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railsmith/railsmith/pkg/pipeline"
)

// statsCommand creates the stats command for inspecting a network.
func (c *CLI) statsCommand() *cobra.Command {
	var passesStr string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print statistics for a gate network",
		Long: `Print statistics for a gate network.

Optionally applies a pass sequence first, so before/after comparisons only
need two invocations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Passes = parsePasses(passesStr)
			if err := pipeline.ValidatePasses(opts.Passes); err != nil {
				return err
			}
			return c.runStats(opts)
		},
	}

	cmd.Flags().StringVarP(&passesStr, "passes", "p", "", "pass sequence to apply before measuring (comma-separated)")
	cmd.Flags().IntVar(&opts.Buffers, "buffers", 0, "buffer count for the buffers pass")

	return cmd
}

// runStats loads the network, applies any passes and prints the figures.
func (c *CLI) runStats(opts pipeline.Options) error {
	if err := opts.ValidateForLoad(); err != nil {
		return err
	}
	opts.Logger = c.Logger

	raw, err := pipeline.ReadSource(opts)
	if err != nil {
		return err
	}
	n, err := pipeline.Load(raw, opts)
	if err != nil {
		return err
	}

	_, scoapSum, err := pipeline.ApplyPasses(n, opts)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	printKeyValue("inputs", fmt.Sprintf("%d", n.NumInputs()))
	printKeyValue("outputs", fmt.Sprintf("%d", n.NumOutputs()))
	printKeyValue("inner", fmt.Sprintf("%d", n.NumInner()))
	printKeyValue("buffers", fmt.Sprintf("%d", n.NumBuffers()))
	printKeyValue("gates", fmt.Sprintf("%d", n.NumGates()))
	printKeyValue("depth", fmt.Sprintf("%d", n.ComputeNetDepth()))
	printKeyValue("avg fan-out", fmt.Sprintf("%.2f", n.ComputeAvgFanOut()))
	if scoapSum > 0 {
		printKeyValue("scoap sum", fmt.Sprintf("%d", scoapSum))
	}

	return nil
}
