package transform

import (
	"testing"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

func TestConvNANDPreservesFunction(t *testing.T) {
	n := halfAdder(t)
	before := truthTable(t, n, 2)

	ConvNAND(n)

	after := truthTable(t, n, 2)
	if !equalTables(before, after) {
		t.Errorf("truth table changed:\nbefore %v\nafter  %v", before, after)
	}
}

func TestConvNANDCollapsesSharedInversion(t *testing.T) {
	n := halfAdder(t)
	g0 := n.MustGate(n.InnerIDs()[0])
	g1 := n.MustGate(n.InnerIDs()[1])
	g2 := n.MustGate(n.InnerIDs()[2])

	ConvNAND(n)

	// GATE_0's only follower reads it inverted, so the inversion moves
	// onto GATE_0's output.
	if !g0.OutputInverting() {
		t.Errorf("%s should be output-inverting", g0.Name())
	}
	for j := 0; j < g1.FanIn(); j++ {
		inv := g1.InputInverting(j)
		switch g1.Driver(j) {
		case g0.ID():
			if inv {
				t.Errorf("%s pin reading %s should be cleared", g1.Name(), g0.Name())
			}
		case g2.ID():
			// GATE_2 also feeds a plain output pin, so its inversion
			// stays on the pin.
			if !inv {
				t.Errorf("%s pin reading %s should stay inverting", g1.Name(), g2.Name())
			}
		}
	}
	if g2.OutputInverting() {
		t.Errorf("%s should not be output-inverting", g2.Name())
	}
}

func TestConvNANDBufferPushesToDriver(t *testing.T) {
	n := boolnet.NewNet(1, 1, 1)
	a := n.InputIDs()[0]
	g := n.InnerIDs()[0]
	out := n.OutputIDs()[0]
	n.MustGate(g).SetFunction(boolnet.FnBuffer)
	connect(t, n, a, g, false)
	connect(t, n, g, out, true)
	n.ComputeNetDepth()
	before := truthTable(t, n, 1)

	ConvNAND(n)

	// The buffer forwards the inversion one step onto its driver.
	if !n.MustGate(a).OutputInverting() {
		t.Error("input should be output-inverting")
	}
	if n.MustGate(g).OutputInverting() {
		t.Error("buffer should not be output-inverting")
	}
	if n.MustGate(out).InputInverting(0) {
		t.Error("output pin should be cleared")
	}
	if after := truthTable(t, n, 1); !equalTables(before, after) {
		t.Errorf("truth table changed:\nbefore %v\nafter  %v", before, after)
	}
}

func TestConvNANDDoubleWiredFollower(t *testing.T) {
	n := boolnet.NewNet(2, 1, 2)
	a := n.InputIDs()[0]
	b := n.InputIDs()[1]
	g0 := n.InnerIDs()[0]
	g1 := n.InnerIDs()[1]
	connect(t, n, a, g0, false)
	connect(t, n, b, g0, false)
	// NAND used as an inverter: both pins of GATE_1 read GATE_0.
	connect(t, n, g0, g1, true)
	connect(t, n, g0, g1, true)
	connect(t, n, g1, n.OutputIDs()[0], false)
	n.ComputeNetDepth()
	before := truthTable(t, n, 2)

	ConvNAND(n)

	if !n.MustGate(g0).OutputInverting() {
		t.Errorf("GATE_0 should be output-inverting")
	}
	for j := 0; j < n.MustGate(g1).FanIn(); j++ {
		if n.MustGate(g1).InputInverting(j) {
			t.Errorf("GATE_1 pin %d should be cleared", j)
		}
	}
	if after := truthTable(t, n, 2); !equalTables(before, after) {
		t.Errorf("truth table changed:\nbefore %v\nafter  %v", before, after)
	}
}
