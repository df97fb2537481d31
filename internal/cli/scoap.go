package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/railsmith/railsmith/pkg/boolnet"
	"github.com/railsmith/railsmith/pkg/boolnet/transform"
	"github.com/railsmith/railsmith/pkg/pipeline"
)

// scoapCommand creates the scoap command for testability analysis.
func (c *CLI) scoapCommand() *cobra.Command {
	var (
		passesStr string
		top       int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "scoap [file]",
		Short: "Score a network's testability with SCOAP",
		Long: `Score a network's testability with SCOAP.

Computes 0- and 1-controllability for every gate from the inputs forward and
observability from the outputs backward, then prints the summed score over
the inner gates and the hardest-to-test gates. High scores mark gates that
are difficult to drive or observe; 'transform --passes scoap,buffers'
inserts buffers at exactly those spots.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.Passes = parsePasses(passesStr)
			if err := pipeline.ValidatePasses(opts.Passes); err != nil {
				return err
			}
			return c.runScoap(opts, top)
		},
	}

	cmd.Flags().StringVarP(&passesStr, "passes", "p", "", "pass sequence to apply before scoring (comma-separated)")
	cmd.Flags().IntVar(&top, "top", 10, "number of least testable gates to list")

	return cmd
}

// runScoap computes SCOAP measures and prints the worst offenders.
func (c *CLI) runScoap(opts pipeline.Options, top int) error {
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
	if _, _, err := pipeline.ApplyPasses(n, opts); err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	sum := transform.ComputeSumScoap(n)
	printSuccess("SCOAP sum: %d over %d inner gates", sum, n.NumInner())

	ids := append([]boolnet.GateID(nil), n.InnerIDs()...)
	sort.Slice(ids, func(i, j int) bool {
		return scoapScore(n.MustGate(ids[i])) > scoapScore(n.MustGate(ids[j]))
	})
	if top > len(ids) {
		top = len(ids)
	}

	printNewline()
	for _, id := range ids[:top] {
		g := n.MustGate(id)
		s := g.Scoap()
		printDetail("%-16s cc0=%-6d cc1=%-6d co=%d", g.Name(), s.CC0, s.CC1, s.CO)
	}

	return nil
}

// scoapScore ranks a gate by the product of its three measures, matching
// the ranking used for buffer insertion.
func scoapScore(g *boolnet.Gate) float64 {
	s := g.Scoap()
	return float64(s.CC0) * float64(s.CC1) * float64(s.CO)
}
