package transform

import "github.com/railsmith/railsmith/pkg/boolnet"

// MoveInverters relocates every inverter in the network to the primary
// input and output boundary, leaving a monotonic inner network. The pass
// alternates three rewrites until a fixed point:
//
//   - lift inverter-only trees over gates towards the outputs,
//   - absorb fan-in inversions shared by all followers into the driver,
//   - swap inverting-output gates for their De Morgan equivalents.
//
// When an inversion is wanted by only some followers of a gate the gate
// is duplicated with an inverting output (the duplicate becomes the
// gate's complement) and the inverted followers move to the duplicate.
// Only one such conflict is resolved per outer iteration so cheaper
// rewrites get a chance to clean up first. A final sweep parks leftover
// inversions in input rails and output buffers.
func MoveInverters(n *boolnet.Net) {
	for run := true; run; {
		run = false
		for run2 := true; run2; {
			run2 = false

			if raiseEqGates(n) {
				liftInverterTrees(n)
				lowerEqGates(n)
			}
			if shiftInverters(n, false) {
				run2, run = true, true
			}
			if lowerEqGates(n) {
				run2, run = true, true
			}
		}
		// One conflict per outer round.
		if shiftInverters(n, true) {
			run = true
		}
	}

	shiftInvertersToInputRails(n)
	shiftInvertersIntoOutputBuffers(n)
}

// invertedFollowers counts followers of g that read g through an
// inverting pin. One matching pin per follower is inspected, so a gate
// feeding several pins of the same follower counts once per follower
// entry. The second count restricts the first to primary outputs.
func invertedFollowers(n *boolnet.Net, g *boolnet.Gate) (total, outputs int) {
	for j := 0; j < g.FanOut(); j++ {
		f := n.MustGate(g.Follower(j))
		for k := 0; k < f.FanIn(); k++ {
			if f.Driver(k) == g.ID() {
				if f.InputInverting(k) {
					total++
					if f.Placement() == boolnet.PlaceOutput {
						outputs++
					}
				}
				break
			}
		}
	}
	return total, outputs
}

// clearFollowerPins clears the inversion flag of every pin through which
// a follower of g reads g.
func clearFollowerPins(n *boolnet.Net, g *boolnet.Gate) {
	for j := 0; j < g.FanOut(); j++ {
		f := n.MustGate(g.Follower(j))
		for k := 0; k < f.FanIn(); k++ {
			if f.Driver(k) == g.ID() {
				f.SetInputNonInverting(k)
			}
		}
	}
}

// shiftInverters moves inversions shared by every follower of an inner
// gate into the gate's output. With solveConflict set it additionally
// resolves at most one partial inversion by duplicating the gate.
func shiftInverters(n *boolnet.Net, solveConflict bool) bool {
	changed := false

	for i := 0; i < n.NumInner(); i++ {
		g, err := n.InnerGate(i)
		if err != nil {
			break
		}
		inverted, invertedOutputs := invertedFollowers(n, g)

		switch {
		case inverted == g.FanOut() && inverted != invertedOutputs:
			// Every follower wants the inversion: absorb it.
			if g.OutputInverting() {
				g.SetOutputNonInverting()
			} else {
				g.SetOutputInverting()
			}
			if c := g.Complement(); c != boolnet.NoGate {
				// g now equals its complement.
				_ = n.MergeEqGates(c, g.ID())
				g.SetComplement(boolnet.NoGate)
			}
			clearFollowerPins(n, g)
			changed = true

		case inverted != g.FanOut() && inverted != 0 && solveConflict:
			dup := conflictDuplicate(n, g)
			moveInvertedFollowers(n, g, dup)
			return true
		}
	}

	return changed
}

// conflictDuplicate returns the inverting-output twin of g, creating and
// cross-linking it when g has no complement yet. A fresh twin copies g's
// function and drivers.
func conflictDuplicate(n *boolnet.Net, g *boolnet.Gate) *boolnet.Gate {
	if c := g.Complement(); c != boolnet.NoGate {
		return n.MustGate(c)
	}
	dup := n.NewGate("D_"+g.Name(), g.Function(), g.Placement())
	dup.SetComplement(g.ID())
	g.SetComplement(dup.ID())
	dup.SetOutputInverting()
	for j := 0; j < g.FanIn(); j++ {
		n.NewInput(dup.ID(), g.Driver(j), g.InputInverting(j))
	}
	return dup
}

// moveInvertedFollowers re-homes every follower that reads g through an
// inverting pin onto dup, clearing the pin inversion.
func moveInvertedFollowers(n *boolnet.Net, g, dup *boolnet.Gate) {
	for j := 0; j < g.FanOut(); j++ {
		f := n.MustGate(g.Follower(j))
		for k := 0; k < f.FanIn(); k++ {
			if f.Driver(k) == g.ID() {
				if f.InputInverting(k) {
					n.AddFollow(dup.ID(), f.ID())
					n.SwapDriver(f.ID(), g.ID(), dup.ID())
					f.SetInputNonInverting(k)
					n.RemFollow(g.ID(), f.ID())
					j--
				}
				break
			}
		}
	}
}

// lowerEqGates replaces every inverting-output inner gate with its De
// Morgan equivalent, pushing the inversion onto the fan-in pins.
func lowerEqGates(n *boolnet.Net) bool {
	changed := false
	for _, id := range n.InnerIDs() {
		if n.MustGate(id).OutputInverting() {
			_ = n.ChangeToEqGate(id)
			changed = true
		}
	}
	return changed
}

// raiseEqGates replaces every non-inverting inner gate whose pins are all
// inverting with its De Morgan equivalent, collecting the inversions on
// the output.
func raiseEqGates(n *boolnet.Net) bool {
	changed := false
	for _, id := range n.InnerIDs() {
		g := n.MustGate(id)
		if g.OutputInverting() {
			continue
		}
		allInverted := true
		for j := 0; j < g.FanIn(); j++ {
			if !g.InputInverting(j) {
				allInverted = false
				break
			}
		}
		if allInverted {
			_ = n.ChangeToEqGate(id)
			changed = true
		}
	}
	return changed
}

// liftInverterTrees repeatedly lifts trees made purely of inversions over
// their root towards the primary outputs.
func liftInverterTrees(n *boolnet.Net) {
	for repeat := true; repeat; {
		repeat = false
		for _, id := range n.OutputIDs() {
			g := n.MustGate(id)
			if detectInverterTree(n, g) {
				liftInverterTree(n, g)
				repeat = true
			}
		}
	}
}

// detectInverterTree reports whether every fan-in path of g carries an
// inversion that can be lifted over g: an inverting pin, a single-fanout
// inverting driver, or recursively another liftable tree.
func detectInverterTree(n *boolnet.Net, g *boolnet.Gate) bool {
	if g.Placement() == boolnet.PlaceInput {
		return false
	}
	for i := 0; i < g.FanIn(); i++ {
		if g.InputInverting(i) {
			continue
		}
		d := n.MustGate(g.Driver(i))
		switch {
		case d.OutputInverting() && d.FanOut() == 1:
		case d.FanOut() > 1:
			return false
		case detectInverterTree(n, d):
		default:
			return false
		}
	}
	return true
}

// liftInverterTree absorbs the inversions below g into g's pins and then
// swaps g for its De Morgan equivalent. Only valid after
// [detectInverterTree] returned true.
func liftInverterTree(n *boolnet.Net, g *boolnet.Gate) {
	for i := 0; i < g.FanIn(); i++ {
		if g.InputInverting(i) {
			continue
		}
		d := n.MustGate(g.Driver(i))
		if d.OutputInverting() && d.FanOut() == 1 {
			d.SetOutputNonInverting()
			g.SetInputInverting(i)
			if c := d.Complement(); c != boolnet.NoGate {
				_ = n.MergeEqGates(c, d.ID())
				d.SetComplement(boolnet.NoGate)
			}
		} else {
			liftInverterTree(n, d)
			i--
		}
	}
	_ = n.ChangeToEqGate(g.ID())
}

// shiftInvertersToInputRails parks first-level inversions in the primary
// inputs. An input whose followers all read it inverted becomes an
// inverting source; a partially inverted input grows an inverting rail
// that takes over the inverted followers.
func shiftInvertersToInputRails(n *boolnet.Net) {
	for i := 0; i < n.NumInputs(); i++ {
		g, err := n.Input(i)
		if err != nil {
			break
		}
		inverted, _ := invertedFollowers(n, g)

		switch {
		case inverted == g.FanOut():
			if g.OutputInverting() {
				g.SetOutputNonInverting()
			} else {
				g.SetOutputInverting()
			}
			clearFollowerPins(n, g)

		case inverted != 0:
			var rail *boolnet.Gate
			if c := g.Complement(); c != boolnet.NoGate {
				rail = n.MustGate(c)
			} else {
				rail = n.NewGate("D_"+g.Name(), boolnet.FnBuffer, boolnet.PlaceInput)
				n.NewInput(rail.ID(), g.ID(), false)
				rail.SetOutputInverting()
				rail.ResetDepth()
				rail.SetComplement(g.ID())
				g.SetComplement(rail.ID())
			}
			moveInvertedFollowers(n, g, rail)
		}
	}
}

// shiftInvertersIntoOutputBuffers moves an inverting output-buffer pin
// onto the buffer's own output.
func shiftInvertersIntoOutputBuffers(n *boolnet.Net) {
	for _, id := range n.OutputIDs() {
		g := n.MustGate(id)
		if g.InputInverting(0) {
			g.SetInputNonInverting(0)
			g.SetOutputInverting()
		}
	}
}
