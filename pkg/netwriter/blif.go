package netwriter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// WriteBLIF serializes the network as a single BLIF model. Primary
// inputs with fan-in, synthesized input rails, are left off the .inputs
// line and emitted as .names entries instead, since downstream tools
// must see them as logic.
func WriteBLIF(w io.Writer, n *boolnet.Net, model string, color boolnet.Color) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, ".model %s\n", model)

	bw.WriteString(".inputs")
	for _, id := range n.InputIDs() {
		g := n.MustGate(id)
		if g.HasColor(color) && g.FanIn() == 0 {
			bw.WriteString(" " + g.Name())
		}
	}
	bw.WriteByte('\n')

	bw.WriteString(".outputs")
	for _, id := range n.OutputIDs() {
		if g := n.MustGate(id); g.HasColor(color) {
			bw.WriteString(" " + g.Name())
		}
	}
	bw.WriteByte('\n')

	// Input rails first, then inner gates, then output buffers.
	for _, id := range n.InputIDs() {
		g := n.MustGate(id)
		if g.HasColor(color) && g.FanIn() > 0 {
			writeNames(bw, n, g)
		}
	}
	for _, id := range n.InnerIDs() {
		if g := n.MustGate(id); g.HasColor(color) {
			writeNames(bw, n, g)
		}
	}
	for _, id := range n.OutputIDs() {
		if g := n.MustGate(id); g.HasColor(color) {
			writeNames(bw, n, g)
		}
	}

	bw.WriteString(".end\n")
	return bw.Flush()
}

func writeNames(bw *bufio.Writer, n *boolnet.Net, g *boolnet.Gate) {
	bw.WriteString(".names")
	for j := 0; j < g.FanIn(); j++ {
		bw.WriteString(" " + n.MustGate(g.Driver(j)).Name())
	}
	bw.WriteString(" " + g.Name() + "\n")
	bw.WriteString(blifCover(g) + "\n")
}

// blifCover returns the single-cube cover of a gate. AND and BUFFER
// covers list the on-set; OR is expressed through its off-set cube, a
// zero output when every input misses its controlling value.
func blifCover(g *boolnet.Gate) string {
	var b strings.Builder
	switch g.Function() {
	case boolnet.FnAND:
		for i := 0; i < g.FanIn(); i++ {
			if g.InputInverting(i) {
				b.WriteByte('0')
			} else {
				b.WriteByte('1')
			}
		}
		if g.OutputInverting() {
			b.WriteString(" 0")
		} else {
			b.WriteString(" 1")
		}
	case boolnet.FnOR:
		for i := 0; i < g.FanIn(); i++ {
			if g.InputInverting(i) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		if g.OutputInverting() {
			b.WriteString(" 1")
		} else {
			b.WriteString(" 0")
		}
	default: // buffer
		for i := 0; i < g.FanIn(); i++ {
			if g.InputInverting(i) {
				b.WriteByte('0')
			} else {
				b.WriteByte('1')
			}
		}
		if g.OutputInverting() {
			b.WriteString(" 0")
		} else {
			b.WriteString(" 1")
		}
	}
	return b.String()
}
