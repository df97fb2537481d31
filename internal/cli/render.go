package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/railsmith/railsmith/pkg/pipeline"
)

// renderCommand creates the render command for generating outputs without
// transforming.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a gate network without transforming it",
		Long: `Render a gate network to graphical or netlist formats.

The render command takes an AIGER ASCII file or a JSON netlist (typically
produced by 'transform') and generates outputs without applying any passes.

Use 'transform' with --format to rewrite and render in one step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png, blif, spice (comma-separated)")
	cmd.Flags().StringVar(&opts.Library, "library", "", "TOML cell library (required for spice output)")
	cmd.Flags().IntVar(&opts.Color, "color", 0, "restrict output to gates carrying this color mask")

	return cmd
}

// runRender loads the network and renders it.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering network...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	printSuccess("Rendered %s", opts.Source)
	printStats(result.Stats.GateCount, result.Stats.Depth, result.CacheInfo.RenderHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Source,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}
