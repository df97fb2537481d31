package boolnet

import "testing"

func TestSimHalfAdder(t *testing.T) {
	n := halfAdder(t)

	tests := []struct {
		vector uint32
		sum    bool
		carry  bool
	}{
		{0b00, false, false},
		{0b01, true, false},
		{0b10, true, false},
		{0b11, false, true},
	}

	for _, tt := range tests {
		if err := n.SimInVect(tt.vector); err != nil {
			t.Fatalf("SimInVect(%b): %v", tt.vector, err)
		}
		sum, err := n.OutputValue(0)
		if err != nil {
			t.Fatal(err)
		}
		carry, err := n.OutputValue(1)
		if err != nil {
			t.Fatal(err)
		}
		if sum != tt.sum || carry != tt.carry {
			t.Errorf("vector %02b: sum=%t carry=%t, want sum=%t carry=%t",
				tt.vector, sum, carry, tt.sum, tt.carry)
		}
	}
}

func TestSimGateFunctions(t *testing.T) {
	tests := []struct {
		name   string
		fn     Function
		outInv bool
		want   [4]bool // indexed by input vector
	}{
		{"and", FnAND, false, [4]bool{false, false, false, true}},
		{"nand", FnAND, true, [4]bool{true, true, true, false}},
		{"or", FnOR, false, [4]bool{false, true, true, true}},
		{"nor", FnOR, true, [4]bool{true, false, false, false}},
		{"xor", FnXOR, false, [4]bool{false, true, true, false}},
		{"xnor", FnXOR, true, [4]bool{true, false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNet(2, 1, 1)
			g := n.InnerIDs()[0]
			out := n.OutputIDs()[0]
			mustConnect(t, n, n.InputIDs()[0], g, false)
			mustConnect(t, n, n.InputIDs()[1], g, false)
			mustConnect(t, n, g, out, false)

			gate := n.MustGate(g)
			gate.SetFunction(tt.fn)
			if tt.outInv {
				gate.SetOutputInverting()
			}

			for v := uint32(0); v < 4; v++ {
				if err := n.SimInVect(v); err != nil {
					t.Fatalf("SimInVect(%d): %v", v, err)
				}
				got, err := n.OutputValue(0)
				if err != nil {
					t.Fatal(err)
				}
				if got != tt.want[v] {
					t.Errorf("vector %02b: got %t, want %t", v, got, tt.want[v])
				}
			}
		})
	}
}

func TestSimInvertedInput(t *testing.T) {
	// A single buffer output reading an inverted pin.
	n := NewNet(1, 1, 0)
	in := n.InputIDs()[0]
	out := n.OutputIDs()[0]
	mustConnect(t, n, in, out, true)

	if err := n.SimInVect(1); err != nil {
		t.Fatal(err)
	}
	got, err := n.OutputValue(0)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error("inverted pin should negate the input")
	}
}

func TestSimCycle(t *testing.T) {
	n := NewNet(1, 1, 2)
	g0 := n.InnerIDs()[0]
	g1 := n.InnerIDs()[1]
	mustConnect(t, n, n.InputIDs()[0], g0, false)
	mustConnect(t, n, g0, g1, false)
	// Close a combinational loop.
	n.MustGate(g0).inputs = append(n.MustGate(g0).inputs, Input{Driver: g1})
	n.MustGate(g1).followers = append(n.MustGate(g1).followers, g0)

	if err := n.SimInVect(0); err == nil {
		t.Error("SimInVect should reject cyclic networks")
	}
}
