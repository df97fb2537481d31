package transform

import "github.com/railsmith/railsmith/pkg/boolnet"

// EnableAltSpacer prepares a dual-rail network for alternating-spacer
// operation. All inner gates become output-inverting (negative logic)
// and every edge that connects two gates of the same depth parity is
// broken with a cross-linked pair of inverting buffers, so consecutive
// logic levels always alternate polarity.
//
// The pass walks only the first half of the inner gates, the originals;
// each original and its complement twin are rebalanced together, pairing
// every unbalanced follower with its own twin on the complement rail.
func EnableAltSpacer(n *boolnet.Net) {
	for _, id := range n.InnerIDs() {
		n.MustGate(id).SetOutputInverting()
	}

	half := (n.NumInner() + 1) / 2
	for i := 0; i < half; i++ {
		g := n.MustGate(n.InnerIDs()[i])

		unbalanced := 0
		for j := 0; j < g.FanOut(); j++ {
			if n.MustGate(g.Follower(j)).Depth()%2 == g.Depth()%2 {
				unbalanced++
			}
		}
		if unbalanced == 0 {
			continue
		}

		c := n.MustGate(g.Complement())
		inv0 := n.NewGate(g.Name()+"_BALANCE0", boolnet.FnBuffer, boolnet.PlaceInner)
		inv1 := n.NewGate(g.Name()+"_BALANCE1", boolnet.FnBuffer, boolnet.PlaceInner)
		inv0.SetComplement(inv1.ID())
		inv1.SetComplement(inv0.ID())
		inv0.SetOutputInverting()
		inv1.SetOutputInverting()
		// inv0 inverts g, so it carries the complement rail; inv1
		// inverts the complement and carries g's rail.
		n.NewInput(inv0.ID(), g.ID(), false)
		n.NewInput(inv1.ID(), c.ID(), false)

		for j := 0; j < g.FanOut(); j++ {
			f := n.MustGate(g.Follower(j))
			if f.Depth()%2 != g.Depth()%2 {
				continue
			}
			cf := n.MustGate(f.Complement())

			n.SwapDriver(f.ID(), g.ID(), inv1.ID())
			n.SwapDriver(cf.ID(), c.ID(), inv0.ID())
			n.AddFollow(inv0.ID(), cf.ID())
			n.AddFollow(inv1.ID(), f.ID())
			n.RemFollow(g.ID(), f.ID())
			n.RemFollow(c.ID(), cf.ID())
			j--
		}
	}
}
