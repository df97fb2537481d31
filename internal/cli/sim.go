package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/railsmith/railsmith/pkg/pipeline"
)

// simCommand creates the sim command for evaluating a network.
func (c *CLI) simCommand() *cobra.Command {
	var (
		passesStr string
		vectorStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "sim [file]",
		Short: "Simulate a gate network for one input vector",
		Long: `Simulate a gate network for one input vector.

Bit i of the vector drives input i. The vector accepts decimal, binary (0b)
and hex (0x) notation. Passes given with --passes are applied before the
simulation, so dual-rail or NAND forms can be checked against the original.

Examples:
  railsmith sim adder.aag --vector 0b1011
  railsmith sim adder.aag --vector 0b1011 --passes move,dual`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Passes = parsePasses(passesStr)
			if err := pipeline.ValidatePasses(opts.Passes); err != nil {
				return err
			}
			vector, err := strconv.ParseUint(vectorStr, 0, 32)
			if err != nil {
				return fmt.Errorf("invalid vector %q: %w", vectorStr, err)
			}
			return c.runSim(opts, uint32(vector))
		},
	}

	cmd.Flags().StringVar(&vectorStr, "vector", "0", "input vector (bit i drives input i)")
	cmd.Flags().StringVarP(&passesStr, "passes", "p", "", "pass sequence to apply before simulating (comma-separated)")

	return cmd
}

// runSim evaluates the network and prints every output value.
func (c *CLI) runSim(opts pipeline.Options, vector uint32) error {
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
	if len(opts.Passes) > 0 {
		prog := newProgress(c.Logger)
		if _, _, err := pipeline.ApplyPasses(n, opts); err != nil {
			return fmt.Errorf("transform: %w", err)
		}
		prog.done("Applied %d passes", len(opts.Passes))
	}

	if err := n.SimInVect(vector); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	printInfo("vector 0b%b on %d inputs", vector, n.NumInputs())
	for i := 0; i < n.NumOutputs(); i++ {
		g, err := n.Output(i)
		if err != nil {
			return err
		}
		val, err := n.OutputValue(i)
		if err != nil {
			return err
		}
		v := 0
		if val {
			v = 1
		}
		printDetail("%-16s %d", g.Name(), v)
	}

	return nil
}
