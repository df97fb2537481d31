package boolnet

import "math"

// Place2Rect assigns every gate a coordinate on a square grid with edge
// length ceil(sqrt(total gates)). Gates are laid out breadth-first by
// depth starting from the primary inputs, so wires mostly run between
// adjacent rows. The placement is a seed for external tools, not a
// legalized layout.
func (n *Net) Place2Rect() {
	total := len(n.gates)
	if total == 0 {
		return
	}
	edge := int(math.Ceil(math.Sqrt(float64(total))))

	visited := make(map[GateID]bool, total)
	queue := make([]GateID, 0, total)
	for _, id := range n.inputs {
		queue = append(queue, id)
		visited[id] = true
	}
	pos := 0
	place := func(id GateID) {
		n.MustGate(id).PlaceAt(pos%edge, pos/edge)
		pos++
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		place(id)
		for _, f := range n.MustGate(id).followers {
			if !visited[f] {
				visited[f] = true
				queue = append(queue, f)
			}
		}
	}
	// Disconnected gates still get a slot at the end of the grid.
	for id, g := range n.gates {
		if !visited[id] {
			g.PlaceAt(pos%edge, pos/edge)
			pos++
		}
	}
}
