package transform

import (
	"testing"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

func TestConvDualRailPreservesOutputs(t *testing.T) {
	n := halfAdder(t)
	MoveInverters(n)
	before := truthTable(t, n, 2)

	ConvDualRail(n)

	// Output twins double the output list; the original outputs keep
	// their positions, so only those columns must match.
	after := truthTable(t, n, 2)
	for i, row := range after {
		if len(row) < len(before[i]) {
			t.Fatalf("vector %d has %d outputs, want at least %d", i, len(row), len(before[i]))
		}
		for j := range before[i] {
			if row[j] != before[i][j] {
				t.Errorf("vector %d output %d = %v, want %v", i, j, row[j], before[i][j])
			}
		}
	}
}

func TestConvDualRailComplements(t *testing.T) {
	n := halfAdder(t)
	MoveInverters(n)

	inputs := n.NumInputs()
	inner := n.NumInner()
	outputs := n.NumOutputs()

	ConvDualRail(n)

	// Both primary inputs already grew rails during inverter
	// relocation, so no further input twins appear.
	if got := n.NumInputs(); got != inputs {
		t.Errorf("NumInputs = %d, want %d", got, inputs)
	}
	if got := n.NumInner(); got != 2*inner {
		t.Errorf("NumInner = %d, want %d", got, 2*inner)
	}
	if got := n.NumOutputs(); got != 2*outputs {
		t.Errorf("NumOutputs = %d, want %d", got, 2*outputs)
	}

	// Every gate gains a mutual complement link.
	for _, ids := range [][]boolnet.GateID{n.InputIDs(), n.InnerIDs(), n.OutputIDs()} {
		for _, id := range ids {
			g := n.MustGate(id)
			c := g.Complement()
			if c == boolnet.NoGate {
				t.Errorf("gate %s has no complement", g.Name())
				continue
			}
			partner := n.MustGate(c)
			if partner.Complement() != id {
				t.Errorf("gate %s: complement link not mutual", g.Name())
			}
		}
	}

	// The dual of an inner gate computes with the dual function.
	for i := 0; i < inner; i++ {
		g := n.MustGate(n.InnerIDs()[i])
		c := n.MustGate(g.Complement())
		if g.Function() != boolnet.FnBuffer && c.Function() != g.Function().Dual() {
			t.Errorf("gate %s: dual function = %v, want %v", g.Name(), c.Function(), g.Function().Dual())
		}
	}
}

func TestConvDualRailNoInnerInversions(t *testing.T) {
	n := halfAdder(t)
	MoveInverters(n)
	ConvDualRail(n)

	// All inversions now live on the input rails; inner gates and
	// outputs read their rails directly.
	for _, ids := range [][]boolnet.GateID{n.InnerIDs(), n.OutputIDs()} {
		for _, id := range ids {
			g := n.MustGate(id)
			if g.OutputInverting() {
				t.Errorf("gate %s is output-inverting", g.Name())
			}
			for j := 0; j < g.FanIn(); j++ {
				if g.InputInverting(j) {
					t.Errorf("gate %s pin %d is inverting", g.Name(), j)
				}
			}
		}
	}
}

func TestConvDualRailComplementValues(t *testing.T) {
	n := halfAdder(t)
	MoveInverters(n)
	ConvDualRail(n)

	// In dual-rail encoding the complement rail always carries the
	// negated value.
	for v := uint32(0); v < 4; v++ {
		if err := n.SimInVect(v); err != nil {
			t.Fatalf("SimInVect(%d): %v", v, err)
		}
		for _, ids := range [][]boolnet.GateID{n.InputIDs(), n.InnerIDs(), n.OutputIDs()} {
			for _, id := range ids {
				g := n.MustGate(id)
				c := g.Complement()
				if c == boolnet.NoGate {
					continue
				}
				if g.Value() == n.MustGate(c).Value() {
					t.Errorf("vector %02b: gate %s and its complement agree on %t",
						v, g.Name(), g.Value())
				}
			}
		}
	}
}

func TestConvDualRailTwinFollowers(t *testing.T) {
	n := halfAdder(t)
	MoveInverters(n)
	innerBefore := n.NumInner()

	ConvDualRail(n)

	// Whoever reads a gate has a twin reading the gate's twin. The
	// spacer pass rebalances a pair through exactly this relation.
	for i := 0; i < innerBefore; i++ {
		g := n.MustGate(n.InnerIDs()[i])
		c := n.MustGate(g.Complement())
		if g.FanOut() != c.FanOut() {
			t.Errorf("gate %s: fan-out %d vs twin %d", g.Name(), g.FanOut(), c.FanOut())
			continue
		}
		for j := 0; j < g.FanOut(); j++ {
			f := n.MustGate(g.Follower(j))
			found := false
			for k := 0; k < c.FanOut(); k++ {
				if c.Follower(k) == f.Complement() {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("gate %s: twin of follower %s does not read twin %s",
					g.Name(), f.Name(), c.Name())
			}
		}
	}
}
