package boolnet

// ColorInTreeOf marks every gate in the transitive fan-in of the i-th
// primary output, the output included, with [ColorInTree].
func (n *Net) ColorInTreeOf(i int) error {
	root, err := n.Output(i)
	if err != nil {
		return err
	}
	stack := []GateID{root.id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g := n.MustGate(id)
		if g.color&ColorInTree != 0 {
			continue
		}
		g.AddColor(ColorInTree)
		for _, in := range g.inputs {
			stack = append(stack, in.Driver)
		}
	}
	return nil
}

// ColorOutTreeOf marks every gate in the transitive fan-out of the i-th
// primary input, the input included, with [ColorOutTree].
func (n *Net) ColorOutTreeOf(i int) error {
	root, err := n.Input(i)
	if err != nil {
		return err
	}
	stack := []GateID{root.id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g := n.MustGate(id)
		if g.color&ColorOutTree != 0 {
			continue
		}
		g.AddColor(ColorOutTree)
		stack = append(stack, g.followers...)
	}
	return nil
}

// ColorBaseGates marks one gate of every complementary pair, plus every
// gate without a complement, with [ColorDualBase]. On a dual-rail network
// the colored subgraph is a single-rail rendition of the original
// function, which serializers can emit on its own.
func (n *Net) ColorBaseGates() {
	mark := func(ids []GateID) {
		for _, id := range ids {
			g := n.MustGate(id)
			c := g.complement
			if c == NoGate {
				g.AddColor(ColorDualBase)
				continue
			}
			if partner, ok := n.gates[c]; !ok || partner.color&ColorDualBase == 0 {
				g.AddColor(ColorDualBase)
			}
		}
	}
	mark(n.inputs)
	mark(n.inner)
	mark(n.outputs)
}

// ClearColors removes every color bit from every gate.
func (n *Net) ClearColors() {
	for _, g := range n.gates {
		g.color = ColorNone
	}
}
