package boolnet

import "testing"

func TestColorInTreeOf(t *testing.T) {
	n := halfAdder(t)

	// The carry output cone: OUT_1, GATE_2 and both inputs.
	if err := n.ColorInTreeOf(1); err != nil {
		t.Fatalf("ColorInTreeOf: %v", err)
	}

	wantColored := map[GateID]bool{
		n.OutputIDs()[1]: true,
		n.InnerIDs()[2]:  true,
		n.InputIDs()[0]:  true,
		n.InputIDs()[1]:  true,
	}
	for id, g := range n.gates {
		if got := g.HasColor(ColorInTree); got != wantColored[id] {
			t.Errorf("gate %s: HasColor(ColorInTree) = %t, want %t", g.Name(), got, wantColored[id])
		}
	}
}

func TestColorOutTreeOf(t *testing.T) {
	n := halfAdder(t)

	// Every gate is downstream of input a except input b.
	if err := n.ColorOutTreeOf(0); err != nil {
		t.Fatalf("ColorOutTreeOf: %v", err)
	}

	b := n.InputIDs()[1]
	for id, g := range n.gates {
		want := id != b
		if got := g.HasColor(ColorOutTree); got != want {
			t.Errorf("gate %s: HasColor(ColorOutTree) = %t, want %t", g.Name(), got, want)
		}
	}
}

func TestColorNoneMatchesEverything(t *testing.T) {
	n := halfAdder(t)
	for _, g := range n.gates {
		if !g.HasColor(ColorNone) {
			t.Fatalf("gate %s: HasColor(ColorNone) must hold for every gate", g.Name())
		}
	}
}

func TestColorBaseGates(t *testing.T) {
	n := NewNet(1, 1, 2)
	g0 := n.InnerIDs()[0]
	g1 := n.InnerIDs()[1]
	n.MustGate(g0).SetComplement(g1)
	n.MustGate(g1).SetComplement(g0)

	n.ColorBaseGates()

	c0 := n.MustGate(g0).HasColor(ColorDualBase)
	c1 := n.MustGate(g1).HasColor(ColorDualBase)
	if c0 == c1 {
		t.Errorf("exactly one gate of a complement pair should carry the base color, got %t/%t", c0, c1)
	}
	if !n.MustGate(n.InputIDs()[0]).HasColor(ColorDualBase) {
		t.Error("gates without a complement must carry the base color")
	}

	n.ClearColors()
	for _, g := range n.gates {
		if g.HasColor(ColorDualBase) || g.HasColor(ColorInTree) {
			t.Fatal("ClearColors left color bits behind")
		}
	}
}

func TestPlace2Rect(t *testing.T) {
	n := halfAdder(t)
	n.Place2Rect()

	// 7 gates fit a 3x3 grid; every gate gets a distinct cell inside it.
	seen := make(map[[2]int]bool)
	for _, g := range n.gates {
		if !g.Placed() {
			t.Fatalf("gate %s not placed", g.Name())
		}
		x, y := g.PlaceX(), g.PlaceY()
		if x < 0 || x >= 3 || y < 0 || y >= 3 {
			t.Errorf("gate %s at (%d,%d) outside the 3x3 grid", g.Name(), x, y)
		}
		cell := [2]int{x, y}
		if seen[cell] {
			t.Errorf("cell (%d,%d) assigned twice", x, y)
		}
		seen[cell] = true
	}

	// Inputs start the breadth-first order, so they occupy the first row.
	for _, id := range n.InputIDs() {
		if g := n.MustGate(id); g.PlaceY() != 0 {
			t.Errorf("input %s at row %d, want 0", g.Name(), g.PlaceY())
		}
	}
}
