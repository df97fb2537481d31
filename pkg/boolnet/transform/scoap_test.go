package transform

import (
	"testing"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

func TestComputeSumScoapHalfAdder(t *testing.T) {
	n := halfAdder(t)

	sum := ComputeSumScoap(n)

	// Hand-computed from the SCOAP rules with inputs seeded at (1,1):
	// GATE_0 and GATE_2 are two-input ANDs straight off the inputs,
	// GATE_1 combines them through inverted pins and feeds the sum
	// output, GATE_2 additionally feeds the carry output.
	want := []struct {
		name         string
		cc0, cc1, co uint32
	}{
		{"GATE_0", 2, 3, 5},
		{"GATE_1", 4, 5, 1},
		{"GATE_2", 2, 3, 1},
	}
	for i, w := range want {
		s := n.MustGate(n.InnerIDs()[i]).Scoap()
		if s.CC0 != w.cc0 || s.CC1 != w.cc1 || s.CO != w.co {
			t.Errorf("%s scoap = (%d, %d, %d), want (%d, %d, %d)",
				w.name, s.CC0, s.CC1, s.CO, w.cc0, w.cc1, w.co)
		}
	}
	if sum != 26 {
		t.Errorf("sum = %d, want 26", sum)
	}
}

func TestComputeSumScoapInputObservability(t *testing.T) {
	n := halfAdder(t)
	ComputeSumScoap(n)

	// Each input is observed cheapest through the carry gate: its own
	// CO of 1 plus holding the other input at 1.
	for _, id := range n.InputIDs() {
		if co := n.MustGate(id).Scoap().CO; co != 3 {
			t.Errorf("input %s CO = %d, want 3", n.MustGate(id).Name(), co)
		}
	}
}

func TestComputeSumScoapBufferSeeds(t *testing.T) {
	n := halfAdder(t)
	ComputeSumScoap(n)
	InsertBuffsByScoap(n, 1)

	// Registered buffers reseed both propagations, so figures behind
	// the new test point improve on the next run.
	ComputeSumScoap(n)

	buff := n.MustGate(n.BufferIDs()[0])
	if s := buff.Scoap(); s.CC0 != 1 || s.CC1 != 1 || s.CO != 0 {
		t.Errorf("buffer scoap = (%d, %d, %d), want (1, 1, 0)", s.CC0, s.CC1, s.CO)
	}
	// GATE_0 is now observed directly at the buffer.
	if co := n.MustGate(n.InnerIDs()[0]).Scoap().CO; co != 1 {
		t.Errorf("GATE_0 CO = %d, want 1", co)
	}
}

func TestSatAdd(t *testing.T) {
	tests := []struct {
		a, b, want uint32
	}{
		{0, 0, 0},
		{2, 3, 5},
		{boolnet.Infinity, 1, boolnet.Infinity},
		{1, boolnet.Infinity, boolnet.Infinity},
		{boolnet.Infinity - 1, 2, boolnet.Infinity},
	}
	for _, tt := range tests {
		if got := satAdd(tt.a, tt.b); got != tt.want {
			t.Errorf("satAdd(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
