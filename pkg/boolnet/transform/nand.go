package transform

import "github.com/railsmith/railsmith/pkg/boolnet"

// ConvNAND collapses pin inversions into inverting gate outputs, turning
// a freshly loaded and-inverter network into NAND-style gates. A gate
// whose followers all read it inverted has the inversion moved onto its
// own output; a single-input buffer pushes it one step further onto its
// driver.
//
// Run this on a freshly loaded network only. Constant-output gates must
// be removed first, since folding inversions through them alters the
// constant.
func ConvNAND(n *boolnet.Net) {
	for _, id := range n.InnerIDs() {
		g := n.MustGate(id)

		// A follower counts as inverted when any of its pins reads g
		// inverted, so a gate wired twice into one follower, NAND used
		// as an inverter, still counts once.
		inverted := 0
		for j := 0; j < g.FanOut(); j++ {
			f := n.MustGate(g.Follower(j))
			for k := 0; k < f.FanIn(); k++ {
				if f.Driver(k) == g.ID() && f.InputInverting(k) {
					inverted++
					break
				}
			}
		}
		if inverted != g.FanOut() {
			continue
		}

		clearFollowerPins(n, g)
		switch {
		case g.OutputInverting():
			g.SetOutputNonInverting()
		case g.Function() == boolnet.FnBuffer && g.FanIn() == 1:
			n.MustGate(g.Driver(0)).SetOutputInverting()
		default:
			g.SetOutputInverting()
		}
	}
}
