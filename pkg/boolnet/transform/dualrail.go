package transform

import "github.com/railsmith/railsmith/pkg/boolnet"

// ConvDualRail converts a monotonic network into its dual-rail form.
// Every gate gains a complementary twin computing the inverted function
// (AND twins OR and vice versa), every primary input gains an inverting
// input rail and every primary output gains a twin reading the
// complement rail. All remaining inversions are then rewired onto the
// complement rails, so the result contains no inverting edges at all.
//
// Call [MoveInverters] first; the conversion assumes inversions only
// appear at the network boundary.
func ConvDualRail(n *boolnet.Net) {
	innerIDs := append([]boolnet.GateID(nil), n.InnerIDs()...)
	inputIDs := append([]boolnet.GateID(nil), n.InputIDs()...)
	outputIDs := append([]boolnet.GateID(nil), n.OutputIDs()...)

	// Twin every inner gate. The twin reads the same drivers through
	// negated pins, so on the original rails it computes the complement.
	// Gates twinned earlier, by [MoveInverters] conflict duplication,
	// already carry their complement rail.
	for _, id := range innerIDs {
		g := n.MustGate(id)
		if g.Complement() != boolnet.NoGate {
			continue
		}
		dual := n.NewGate("D_"+g.Name(), g.Function().Dual(), g.Placement())
		dual.SetComplement(g.ID())
		g.SetComplement(dual.ID())
		if g.OutputInverting() {
			dual.SetOutputInverting()
		}
		for j := 0; j < g.FanIn(); j++ {
			n.NewInput(dual.ID(), g.Driver(j), !g.InputInverting(j))
		}
	}

	// Twin every primary input with an inverting rail fed by the input,
	// unless an earlier pass already parked one there.
	for _, id := range inputIDs {
		g := n.MustGate(id)
		if g.Complement() != boolnet.NoGate {
			continue
		}
		rail := n.NewGate("D_"+g.Name(), boolnet.FnBuffer, boolnet.PlaceInput)
		n.NewInput(rail.ID(), g.ID(), false)
		rail.SetOutputInverting()
		rail.ResetDepth()
		rail.SetComplement(g.ID())
		g.SetComplement(rail.ID())
	}

	// Twin every primary output, reading the complement of its driver.
	for _, id := range outputIDs {
		g := n.MustGate(id)
		if g.Complement() != boolnet.NoGate {
			continue
		}
		if g.OutputInverting() {
			// Fold the output inversion into the pin so the crossing
			// below discharges it onto the complement rail.
			g.SetOutputNonInverting()
			if g.InputInverting(0) {
				g.SetInputNonInverting(0)
			} else {
				g.SetInputInverting(0)
			}
		}
		dual := n.NewGate("D_"+g.Name(), g.Function(), g.Placement())
		dual.SetComplement(g.ID())
		g.SetComplement(dual.ID())
		driver := n.MustGate(g.Driver(0))
		n.NewInput(dual.ID(), driver.Complement(), false)

		if g.InputInverting(0) {
			// The output wanted the inverted signal: cross the rails so
			// each output buffer reads the rail matching its polarity.
			g.SetInputNonInverting(0)
			rail := n.MustGate(dual.Driver(0))
			n.SetDriverAt(g.ID(), 0, rail.ID())
			n.SetDriverAt(dual.ID(), 0, driver.ID())

			n.RemFollow(rail.ID(), dual.ID())
			n.AddFollow(rail.ID(), g.ID())
			n.RemFollow(driver.ID(), g.ID())
			n.AddFollow(driver.ID(), dual.ID())
		}
	}

	// Push output inversions onto the follower pins, leaving all outputs
	// non-inverting.
	for _, id := range n.InnerIDs() {
		g := n.MustGate(id)
		if g.OutputInverting() {
			toggleFollowerPins(n, g)
		}
		g.SetOutputNonInverting()
	}

	// Replace every remaining inverting edge with a non-inverting edge
	// from the driver's complement rail.
	rewirePins(n, n.InnerIDs())
	rewirePins(n, n.OutputIDs())
}

// toggleFollowerPins flips the inversion flag of every pin through which
// a follower reads g.
func toggleFollowerPins(n *boolnet.Net, g *boolnet.Gate) {
	for j := 0; j < g.FanOut(); j++ {
		f := n.MustGate(g.Follower(j))
		for k := 0; k < f.FanIn(); k++ {
			if f.Driver(k) == g.ID() {
				if f.InputInverting(k) {
					f.SetInputNonInverting(k)
				} else {
					f.SetInputInverting(k)
				}
			}
		}
	}
}

// rewirePins re-homes every inverting pin of the given gates onto the
// complement rail of its driver.
func rewirePins(n *boolnet.Net, ids []boolnet.GateID) {
	for _, id := range ids {
		g := n.MustGate(id)
		for j := 0; j < g.FanIn(); j++ {
			if !g.InputInverting(j) {
				continue
			}
			g.SetInputNonInverting(j)
			d := n.MustGate(g.Driver(j))
			n.RemFollow(d.ID(), g.ID())
			n.SetDriverAt(g.ID(), j, d.Complement())
			n.AddFollow(d.Complement(), g.ID())
		}
	}
}
