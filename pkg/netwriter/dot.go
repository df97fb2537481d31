package netwriter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// ToDOT converts the network to Graphviz DOT. Gates are boxes labelled
// with their function, primary inputs and outputs circles; an edge whose
// effective polarity is inverting carries an odot marker on the
// inverting end. Gates of the same depth share a rank so the drawing
// levels match the logic levels.
func ToDOT(n *boolnet.Net, color boolnet.Color) string {
	var buf bytes.Buffer
	buf.WriteString("graph circ {\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  nodesep=0.005;\n")
	buf.WriteString("  rankdir=\"RL\";\n\n")
	buf.WriteString("  node [shape=box width=1.5];\n\n")

	ranks := make([][]string, n.ComputeNetDepth()+1)
	addRank := func(depth int, name string) {
		if depth >= 0 && depth < len(ranks) {
			ranks[depth] = append(ranks[depth], name)
		}
	}

	buf.WriteString("  # Circuit inputs:\n")
	for _, id := range n.InputIDs() {
		g := n.MustGate(id)
		if !g.HasColor(color) {
			continue
		}
		fmt.Fprintf(&buf, "  %s [label=\"%s\" shape=circle];\n", g.Name(), g.Name())
		addRank(0, g.Name())
	}

	buf.WriteString("\n  # Circuit outputs:\n")
	for _, id := range n.OutputIDs() {
		g := n.MustGate(id)
		if !g.HasColor(color) {
			continue
		}
		fmt.Fprintf(&buf, "  %s [label=\"%s\" shape=circle];\n", g.Name(), g.Name())
		addRank(n.NetDepth(), g.Name())
		writeEdges(&buf, n, g, color)
	}

	buf.WriteString("\n  # Circuit gates:\n")
	for _, id := range n.InnerIDs() {
		g := n.MustGate(id)
		if !g.HasColor(color) {
			continue
		}
		fmt.Fprintf(&buf, "  %s [label=<%s<BR /><FONT POINT-SIZE=\"10\">%s</FONT>>];\n",
			g.Name(), g.Function(), g.Name())
		addRank(g.Depth(), g.Name())
		writeEdges(&buf, n, g, color)
	}

	buf.WriteString("\n  # Gate levels (ranks):\n")
	for _, rank := range ranks {
		fmt.Fprintf(&buf, "  { rank=same; %s };\n", strings.Join(rank, " "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeEdges(buf *bytes.Buffer, n *boolnet.Net, g *boolnet.Gate, color boolnet.Color) {
	for j := 0; j < g.FanIn(); j++ {
		d := n.MustGate(g.Driver(j))
		if !d.HasColor(color) {
			continue
		}
		fmt.Fprintf(buf, "  %s -- %s [", g.Name(), d.Name())
		if g.InputInverting(j) != d.OutputInverting() {
			if d.OutputInverting() {
				buf.WriteString(" dir=forward arrowhead=\"odot\"")
			} else {
				buf.WriteString(" dir=back arrowtail=\"odot\"")
			}
		}
		buf.WriteString("];\n")
	}
}

// RenderSVG renders a DOT graph to SVG in process.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG in process.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
