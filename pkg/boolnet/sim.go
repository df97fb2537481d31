package boolnet

import "fmt"

// SimInVect drives the primary inputs from the bits of vector (input i
// reads bit i, inputs beyond bit 31 read zero) and evaluates the whole
// network in topological order. Gate values are left on the gates and can
// be read back with [Gate.Value] or [Net.OutputValue].
func (n *Net) SimInVect(vector uint32) error {
	for i, id := range n.inputs {
		v := false
		if i < 32 {
			v = vector&(1<<uint(i)) != 0
		}
		g := n.MustGate(id)
		g.SetValue(applyOutput(g, v))
	}
	order, err := n.topoOrder()
	if err != nil {
		return err
	}
	for _, id := range order {
		g := n.MustGate(id)
		// Synthesized input rails have fan-in and re-evaluate like any
		// other gate; only true sources keep their preset value.
		if g.FanIn() == 0 {
			continue
		}
		g.SetValue(n.evalGate(g))
	}
	return nil
}

// OutputValue returns the simulated value of the i-th primary output.
func (n *Net) OutputValue(i int) (bool, error) {
	g, err := n.Output(i)
	if err != nil {
		return false, err
	}
	return g.Value(), nil
}

// evalGate computes a gate's output from its already-evaluated drivers.
func (n *Net) evalGate(g *Gate) bool {
	var v bool
	switch g.fn {
	case FnAND:
		v = true
		for i := range g.inputs {
			v = v && n.pinValue(g, i)
		}
	case FnOR:
		v = false
		for i := range g.inputs {
			v = v || n.pinValue(g, i)
		}
	case FnXOR:
		v = false
		for i := range g.inputs {
			v = v != n.pinValue(g, i)
		}
	default: // buffer
		if len(g.inputs) > 0 {
			v = n.pinValue(g, 0)
		}
	}
	return applyOutput(g, v)
}

func (n *Net) pinValue(g *Gate, i int) bool {
	in := g.inputs[i]
	v := n.MustGate(in.Driver).value
	if in.Inverted {
		v = !v
	}
	return v
}

func applyOutput(g *Gate, v bool) bool {
	if g.outInv {
		return !v
	}
	return v
}

// topoOrder returns every gate in driver-before-follower order using
// Kahn's algorithm. Inputs come first in index order so evaluation and
// traversal stay deterministic.
func (n *Net) topoOrder() ([]GateID, error) {
	indegree := make(map[GateID]int, len(n.gates))
	for id, g := range n.gates {
		indegree[id] += 0
		for _, f := range g.followers {
			indegree[f]++
		}
	}
	var ready []GateID
	for _, id := range n.inputs {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	for id := range n.gates {
		if indegree[id] == 0 && n.gates[id].placement != PlaceInput {
			ready = append(ready, id)
		}
	}
	order := make([]GateID, 0, len(n.gates))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for _, f := range n.MustGate(id).followers {
			indegree[f]--
			if indegree[f] == 0 {
				ready = append(ready, f)
			}
		}
	}
	if len(order) != len(n.gates) {
		return nil, fmt.Errorf("simulate: network contains a cycle")
	}
	return order, nil
}
