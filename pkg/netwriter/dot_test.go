package netwriter

import (
	"strings"
	"testing"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

func TestToDOT(t *testing.T) {
	n := halfAdder(t)

	dot := ToDOT(n, boolnet.ColorNone)

	if !strings.HasPrefix(dot, "graph circ {") {
		t.Errorf("missing graph header in:\n%s", dot)
	}
	for _, want := range []string{
		`INPUT_0 [label="INPUT_0" shape=circle];`,
		`OUT_0 [label="OUT_0" shape=circle];`,
		`GATE_2 [label=<AND<BR /><FONT POINT-SIZE="10">GATE_2</FONT>>];`,
		// Plain edge from the carry output to its driver.
		`OUT_1 -- GATE_2 [];`,
		// GATE_1 reads GATE_2 through an inverting pin.
		`GATE_1 -- GATE_2 [ dir=back arrowtail="odot"];`,
		`{ rank=same; INPUT_0 INPUT_1 };`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTInvertingDriver(t *testing.T) {
	n := halfAdder(t)
	g2 := n.MustGate(n.InnerIDs()[2])
	g2.SetOutputInverting()

	dot := ToDOT(n, boolnet.ColorNone)

	// The inversion marker moves to the driving end, and the doubly
	// inverted pin of GATE_1 cancels out.
	if !strings.Contains(dot, `OUT_1 -- GATE_2 [ dir=forward arrowhead="odot"];`) {
		t.Errorf("missing driver-side marker in:\n%s", dot)
	}
	if !strings.Contains(dot, `GATE_1 -- GATE_2 [];`) {
		t.Errorf("missing cancelled edge in:\n%s", dot)
	}
}

func TestToDOTColorFilter(t *testing.T) {
	n := halfAdder(t)
	if err := n.ColorInTreeOf(1); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(n, boolnet.ColorInTree)

	if !strings.Contains(dot, "GATE_2") {
		t.Errorf("carry cone missing from:\n%s", dot)
	}
	if strings.Contains(dot, "GATE_0") || strings.Contains(dot, "OUT_0 ") {
		t.Errorf("uncolored gates should be filtered out of:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG("graph g { a -- b; }")
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output does not look like SVG")
	}
}
