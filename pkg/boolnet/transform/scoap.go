package transform

import "github.com/railsmith/railsmith/pkg/boolnet"

// ComputeSumScoap computes SCOAP controllability and observability for
// every gate and returns the network testability figure, the sum of
// CC0+CC1+CO over all inner gates.
//
// Primary inputs and buffers seed controllability at (1,1), primary
// outputs and buffers seed observability at 0, and the figures propagate
// through the network with worklists. Every figure starts at the
// [boolnet.Infinity] sentinel and only ever decreases, so both
// propagations terminate at a fixed point.
func ComputeSumScoap(n *boolnet.Net) uint64 {
	var ccWork, coWork []boolnet.GateID

	for _, id := range n.InputIDs() {
		n.MustGate(id).SetControllability(1, 1)
		ccWork = append(ccWork, n.MustGate(id).ID())
	}
	for _, id := range n.BufferIDs() {
		n.MustGate(id).SetControllability(1, 1)
		ccWork = append(ccWork, id)
	}
	propagateControllability(n, ccWork)

	for _, id := range n.OutputIDs() {
		n.MustGate(id).SetObservability(0)
		coWork = append(coWork, id)
	}
	for _, id := range n.BufferIDs() {
		n.MustGate(id).SetObservability(0)
		coWork = append(coWork, id)
	}
	propagateObservability(n, coWork)

	var sum uint64
	for _, id := range n.InnerIDs() {
		s := n.MustGate(id).Scoap()
		sum += uint64(s.CC0) + uint64(s.CC1) + uint64(s.CO)
	}
	return sum
}

// propagateControllability recomputes controllability for the followers
// of every seed until no figure improves.
func propagateControllability(n *boolnet.Net, seeds []boolnet.GateID) {
	work := make([]boolnet.GateID, 0, len(seeds))
	for _, id := range seeds {
		g := n.MustGate(id)
		for j := 0; j < g.FanOut(); j++ {
			work = append(work, g.Follower(j))
		}
	}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		g, ok := n.Gate(id)
		if !ok {
			continue
		}
		if recomputeControllability(n, g) {
			for j := 0; j < g.FanOut(); j++ {
				work = append(work, g.Follower(j))
			}
		}
	}
}

// recomputeControllability derives a gate's controllability pair from
// its drivers and keeps each component only when strictly smaller than
// the stored value. It reports whether anything improved.
func recomputeControllability(n *boolnet.Net, g *boolnet.Gate) bool {
	var cc0, cc1 uint32
	switch g.Function() {
	case boolnet.FnAND:
		cc0, cc1 = boolnet.Infinity, 0
	case boolnet.FnOR:
		cc0, cc1 = 0, boolnet.Infinity
	default:
		cc0, cc1 = 0, 0
	}

	for i := 0; i < g.FanIn(); i++ {
		d := n.MustGate(g.Driver(i)).Scoap()
		d0, d1 := d.CC0, d.CC1
		if g.InputInverting(i) {
			d0, d1 = d1, d0
		}
		switch g.Function() {
		case boolnet.FnAND:
			// One controlling 0 suffices; a 1 needs every input.
			cc0 = min(cc0, d0)
			cc1 = satAdd(cc1, d1)
		case boolnet.FnOR:
			cc1 = min(cc1, d1)
			cc0 = satAdd(cc0, d0)
		default:
			cc0 = satAdd(cc0, d0)
			cc1 = satAdd(cc1, d1)
		}
	}
	if g.OutputInverting() {
		cc0, cc1 = cc1, cc0
	}

	s := g.Scoap()
	changed := false
	if next := satAdd(cc0, 1); next < s.CC0 {
		s.CC0 = next
		changed = true
	}
	if next := satAdd(cc1, 1); next < s.CC1 {
		s.CC1 = next
		changed = true
	}
	if changed {
		g.SetControllability(s.CC0, s.CC1)
	}
	return changed
}

// propagateObservability recomputes observability for the drivers of
// every seed until no figure improves.
func propagateObservability(n *boolnet.Net, seeds []boolnet.GateID) {
	work := make([]boolnet.GateID, 0, len(seeds))
	for _, id := range seeds {
		g := n.MustGate(id)
		for i := 0; i < g.FanIn(); i++ {
			work = append(work, g.Driver(i))
		}
	}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		g, ok := n.Gate(id)
		if !ok {
			continue
		}
		if recomputeObservability(n, g) {
			for i := 0; i < g.FanIn(); i++ {
				work = append(work, g.Driver(i))
			}
		}
	}
}

// recomputeObservability derives a gate's observability from its
// followers: observing g through a follower costs the follower's own
// observability plus holding the follower's other pins at their
// pass-through values.
func recomputeObservability(n *boolnet.Net, g *boolnet.Gate) bool {
	co := g.Scoap().CO
	changed := false

	for i := 0; i < g.FanOut(); i++ {
		f := n.MustGate(g.Follower(i))
		var coNext uint32

		switch f.Function() {
		case boolnet.FnAND, boolnet.FnOR:
			var ccSum uint32
			for j := 0; j < f.FanIn(); j++ {
				if f.Driver(j) == g.ID() {
					continue
				}
				d := n.MustGate(f.Driver(j)).Scoap()
				side0, side1 := d.CC0, d.CC1
				if f.InputInverting(j) {
					side0, side1 = side1, side0
				}
				if f.Function() == boolnet.FnAND {
					ccSum = satAdd(ccSum, side0)
				} else {
					ccSum = satAdd(ccSum, side1)
				}
			}
			coNext = satAdd(satAdd(f.Scoap().CO, ccSum), 1)
		default:
			coNext = satAdd(f.Scoap().CO, 1)
		}

		if coNext < co {
			co = coNext
			changed = true
		}
	}

	if changed {
		g.SetObservability(co)
	}
	return changed
}

// satAdd adds saturating at the Infinity sentinel, so an unknown figure
// stays unknown instead of wrapping.
func satAdd(a, b uint32) uint32 {
	if a > boolnet.Infinity-b {
		return boolnet.Infinity
	}
	return a + b
}
