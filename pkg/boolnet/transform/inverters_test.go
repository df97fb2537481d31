package transform

import (
	"testing"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// halfAdder builds the and-inverter form of a half adder: GATE_0 = !a & !b,
// GATE_2 = a & b (carry) and GATE_1 = !GATE_2 & !GATE_0 (sum).
func halfAdder(t *testing.T) *boolnet.Net {
	t.Helper()
	n := boolnet.NewNet(2, 2, 3)

	a := n.InputIDs()[0]
	b := n.InputIDs()[1]
	g0 := n.InnerIDs()[0]
	g1 := n.InnerIDs()[1]
	g2 := n.InnerIDs()[2]

	connect(t, n, a, g0, true)
	connect(t, n, b, g0, true)
	connect(t, n, a, g2, false)
	connect(t, n, b, g2, false)
	connect(t, n, g2, g1, true)
	connect(t, n, g0, g1, true)
	connect(t, n, g1, n.OutputIDs()[0], false)
	connect(t, n, g2, n.OutputIDs()[1], false)

	n.ComputeNetDepth()
	return n
}

func connect(t *testing.T, n *boolnet.Net, from, to boolnet.GateID, inverted bool) {
	t.Helper()
	if err := n.Connect(from, to, inverted); err != nil {
		t.Fatalf("Connect(%d, %d): %v", from, to, err)
	}
}

// truthTable simulates every vector over the given number of inputs and
// collects the output values.
func truthTable(t *testing.T, n *boolnet.Net, inputs int) [][]bool {
	t.Helper()
	rows := make([][]bool, 0, 1<<inputs)
	for v := uint32(0); v < 1<<inputs; v++ {
		if err := n.SimInVect(v); err != nil {
			t.Fatalf("SimInVect(%d): %v", v, err)
		}
		row := make([]bool, n.NumOutputs())
		for i := range row {
			val, err := n.OutputValue(i)
			if err != nil {
				t.Fatal(err)
			}
			row[i] = val
		}
		rows = append(rows, row)
	}
	return rows
}

func equalTables(a, b [][]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestMoveInvertersPreservesFunction(t *testing.T) {
	n := halfAdder(t)
	before := truthTable(t, n, 2)

	MoveInverters(n)

	after := truthTable(t, n, 2)
	if !equalTables(before, after) {
		t.Errorf("truth table changed:\nbefore %v\nafter  %v", before, after)
	}
}

func TestMoveInvertersClearsPins(t *testing.T) {
	n := halfAdder(t)
	MoveInverters(n)

	// All inversions end up on input rails and output buffers; no pin
	// anywhere stays inverting and no inner gate inverts its output.
	for _, ids := range [][]boolnet.GateID{n.InputIDs(), n.InnerIDs(), n.OutputIDs()} {
		for _, id := range ids {
			g := n.MustGate(id)
			for j := 0; j < g.FanIn(); j++ {
				if g.InputInverting(j) {
					t.Errorf("gate %s: pin %d still inverting", g.Name(), j)
				}
			}
		}
	}
	for _, id := range n.InnerIDs() {
		if g := n.MustGate(id); g.OutputInverting() {
			t.Errorf("inner gate %s still output-inverting", g.Name())
		}
	}
}

func TestMoveInvertersCreatesInputRails(t *testing.T) {
	n := halfAdder(t)
	inputsBefore := n.NumInputs()

	MoveInverters(n)

	// Both inputs feed one inverted and one plain consumer, so each
	// grows an inverting rail.
	if got := n.NumInputs(); got != inputsBefore+2 {
		t.Fatalf("NumInputs = %d, want %d", got, inputsBefore+2)
	}
	rails := 0
	for _, id := range n.InputIDs() {
		g := n.MustGate(id)
		if g.FanIn() == 0 {
			continue // true source
		}
		rails++
		if !g.OutputInverting() {
			t.Errorf("rail %s should be inverting", g.Name())
		}
		if g.Function() != boolnet.FnBuffer {
			t.Errorf("rail %s function = %v, want buffer", g.Name(), g.Function())
		}
		src := n.MustGate(g.Driver(0))
		if g.Complement() != src.ID() || src.Complement() != g.ID() {
			t.Errorf("rail %s not cross-linked with its source %s", g.Name(), src.Name())
		}
	}
	if rails != 2 {
		t.Errorf("inverting rails = %d, want 2", rails)
	}
}

func TestMoveInvertersIdempotent(t *testing.T) {
	n := halfAdder(t)
	MoveInverters(n)
	gates := n.NumGates()

	MoveInverters(n)

	if got := n.NumGates(); got != gates {
		t.Errorf("second run changed gate count from %d to %d", gates, got)
	}
	after := truthTable(t, n, 2)
	want := [][]bool{
		{false, false},
		{true, false},
		{true, false},
		{false, true},
	}
	if !equalTables(after, want) {
		t.Errorf("truth table = %v, want %v", after, want)
	}
}
