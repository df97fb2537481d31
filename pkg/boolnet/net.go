package boolnet

import "fmt"

// Net is the owning arena of a gate-level Boolean network. Every gate
// lives in exactly one Net and is addressed through its [GateID]; the Net
// additionally keeps ordered index slices for primary inputs, primary
// outputs, inner gates and synthesized buffers.
//
// Structural edits go through Net methods. [Net.Connect] and
// [Net.Disconnect] maintain both sides of an edge; the lower-level
// [Net.AddFollow], [Net.RemFollow] and [Net.SwapDriver] touch one side at
// a time and exist for the re-homing steps of the transformation passes.
type Net struct {
	gates  map[GateID]*Gate
	nextID GateID

	inputs  []GateID
	outputs []GateID
	inner   []GateID
	buffers []GateID

	depth     int
	avgFanOut float64
}

// NewNet builds a network with the given number of primary inputs,
// primary outputs and inner gates. Inputs are named INPUT_0..n, inner
// gates GATE_0..n and outputs OUT_0..n; inputs and outputs start as
// buffers, inner gates as AND gates until a loader assigns functions.
func NewNet(numInputs, numOutputs, numGates int) *Net {
	n := &Net{gates: make(map[GateID]*Gate, numInputs+numOutputs+numGates)}
	for i := 0; i < numInputs; i++ {
		n.NewGate(fmt.Sprintf("INPUT_%d", i), FnBuffer, PlaceInput)
	}
	for i := 0; i < numGates; i++ {
		n.NewGate(fmt.Sprintf("GATE_%d", i), FnAND, PlaceInner)
	}
	for i := 0; i < numOutputs; i++ {
		n.NewGate(fmt.Sprintf("OUT_%d", i), FnBuffer, PlaceOutput)
	}
	return n
}

// NewGate allocates a gate, registers it under its placement and returns
// it. The returned gate has no edges.
func (n *Net) NewGate(name string, fn Function, placement Placement) *Gate {
	g := newGate(n.nextID, name, fn, placement)
	n.gates[g.id] = g
	n.nextID++
	switch placement {
	case PlaceInput:
		n.inputs = append(n.inputs, g.id)
	case PlaceOutput:
		n.outputs = append(n.outputs, g.id)
	default:
		n.inner = append(n.inner, g.id)
	}
	return g
}

// RegisterBuffer records g in the buffer index. Buffers also appear in
// the index of their placement class; the buffer index only exists so
// passes can iterate synthesized buffers separately.
func (n *Net) RegisterBuffer(g *Gate) {
	n.buffers = append(n.buffers, g.id)
}

// Gate resolves a GateID. The second result is false for unknown or
// deleted IDs.
func (n *Net) Gate(id GateID) (*Gate, bool) {
	g, ok := n.gates[id]
	return g, ok
}

// MustGate resolves a GateID that the caller knows to be live. It panics
// on unknown IDs; passes use it for edges they just created or verified.
func (n *Net) MustGate(id GateID) *Gate {
	g, ok := n.gates[id]
	if !ok {
		panic(fmt.Sprintf("boolnet: %v: %d", ErrUnknownGate, id))
	}
	return g
}

// NumGates returns the total number of live gates.
func (n *Net) NumGates() int { return len(n.gates) }

// NumInputs returns the number of primary inputs.
func (n *Net) NumInputs() int { return len(n.inputs) }

// NumOutputs returns the number of primary outputs.
func (n *Net) NumOutputs() int { return len(n.outputs) }

// NumInner returns the number of inner gates.
func (n *Net) NumInner() int { return len(n.inner) }

// NumBuffers returns the number of registered buffers.
func (n *Net) NumBuffers() int { return len(n.buffers) }

// Input returns the i-th primary input.
func (n *Net) Input(i int) (*Gate, error) {
	if i < 0 || i >= len(n.inputs) {
		return nil, fmt.Errorf("input %d: %w", i, ErrGateNotFound)
	}
	return n.MustGate(n.inputs[i]), nil
}

// Output returns the i-th primary output.
func (n *Net) Output(i int) (*Gate, error) {
	if i < 0 || i >= len(n.outputs) {
		return nil, fmt.Errorf("output %d: %w", i, ErrGateNotFound)
	}
	return n.MustGate(n.outputs[i]), nil
}

// InnerGate returns the i-th inner gate.
func (n *Net) InnerGate(i int) (*Gate, error) {
	if i < 0 || i >= len(n.inner) {
		return nil, fmt.Errorf("inner gate %d: %w", i, ErrGateNotFound)
	}
	return n.MustGate(n.inner[i]), nil
}

// Buffer returns the i-th registered buffer.
func (n *Net) Buffer(i int) (*Gate, error) {
	if i < 0 || i >= len(n.buffers) {
		return nil, fmt.Errorf("buffer %d: %w", i, ErrGateNotFound)
	}
	return n.MustGate(n.buffers[i]), nil
}

// InputIDs returns the primary input index. The slice is owned by the Net
// and must not be mutated.
func (n *Net) InputIDs() []GateID { return n.inputs }

// OutputIDs returns the primary output index.
func (n *Net) OutputIDs() []GateID { return n.outputs }

// InnerIDs returns the inner gate index.
func (n *Net) InnerIDs() []GateID { return n.inner }

// BufferIDs returns the buffer index.
func (n *Net) BufferIDs() []GateID { return n.buffers }

// ============================================================================
// Edge maintenance
// ============================================================================

// Connect appends a fan-in slot to gate to, driven by from, and records
// to as a follower of from. Depths are updated so to sits below from.
func (n *Net) Connect(from, to GateID, inverted bool) error {
	src, ok := n.gates[from]
	if !ok {
		return fmt.Errorf("connect: driver %d: %w", from, ErrGateNotFound)
	}
	dst, ok := n.gates[to]
	if !ok {
		return fmt.Errorf("connect: follower %d: %w", to, ErrGateNotFound)
	}
	dst.inputs = append(dst.inputs, Input{Driver: from, Inverted: inverted})
	src.followers = append(src.followers, to)
	n.SetDepth(to, src.depth+1)
	return nil
}

// Disconnect removes the first fan-in slot of to that is driven by from,
// together with one matching follower entry of from.
func (n *Net) Disconnect(from, to GateID) error {
	src, ok := n.gates[from]
	if !ok {
		return fmt.Errorf("disconnect: driver %d: %w", from, ErrGateNotFound)
	}
	dst, ok := n.gates[to]
	if !ok {
		return fmt.Errorf("disconnect: follower %d: %w", to, ErrGateNotFound)
	}
	removed := false
	for i, in := range dst.inputs {
		if in.Driver == from {
			dst.inputs = append(dst.inputs[:i], dst.inputs[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return fmt.Errorf("disconnect: no edge %d -> %d: %w", from, to, ErrGateNotFound)
	}
	removeFollower(src, to)
	return nil
}

// AddFollow appends follower to the follower list of g without touching
// the follower's fan-in. The counterpart fan-in slot must be created by
// the caller, usually via [Net.SwapDriver] on the follower.
func (n *Net) AddFollow(g, follower GateID) {
	n.MustGate(g).followers = append(n.MustGate(g).followers, follower)
}

// RemFollow removes the first occurrence of follower from the follower
// list of g. Duplicate entries, one per driven pin, are removed one at a
// time.
func (n *Net) RemFollow(g, follower GateID) {
	removeFollower(n.MustGate(g), follower)
}

func removeFollower(g *Gate, follower GateID) {
	for i, f := range g.followers {
		if f == follower {
			g.followers = append(g.followers[:i], g.followers[i+1:]...)
			return
		}
	}
}

// SwapDriver replaces the driver of the first fan-in slot of g that is
// driven by old with new, keeping the slot's inversion flag, and re-depths
// g under its new driver. The follower lists of old and new are not
// touched; callers pair SwapDriver with [Net.RemFollow] and
// [Net.AddFollow].
func (n *Net) SwapDriver(g, old, new GateID) bool {
	dst := n.MustGate(g)
	for i := range dst.inputs {
		if dst.inputs[i].Driver == old {
			dst.inputs[i].Driver = new
			n.SetDepth(g, n.MustGate(new).depth+1)
			return true
		}
	}
	return false
}

// SetDriverAt replaces the driver of the given fan-in slot of g and
// re-depths g under the new driver. Like [Net.SwapDriver] it leaves the
// follower lists alone; callers re-home those separately.
func (n *Net) SetDriverAt(g GateID, pin int, driver GateID) {
	dst := n.MustGate(g)
	if pin < 0 || pin >= len(dst.inputs) {
		return
	}
	dst.inputs[pin].Driver = driver
	n.SetDepth(g, n.MustGate(driver).depth+1)
}

// NewInput prepends a fan-in slot to g driven by from, records g as a
// follower of from and re-depths g. Prepending keeps the new edge at pin
// zero, which buffer gates read.
func (n *Net) NewInput(g, from GateID, inverted bool) {
	dst := n.MustGate(g)
	src := n.MustGate(from)
	dst.inputs = append([]Input{{Driver: from, Inverted: inverted}}, dst.inputs...)
	src.followers = append(src.followers, g)
	n.SetDepth(g, src.depth+1)
}

// ============================================================================
// Depth
// ============================================================================

// SetDepth raises the depth of g to at least depth and propagates the
// increase through the follower graph with a worklist. Depths only ever
// grow; a smaller candidate is ignored.
func (n *Net) SetDepth(g GateID, depth int) {
	type item struct {
		id    GateID
		depth int
	}
	work := []item{{g, depth}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		gate, ok := n.gates[it.id]
		if !ok || gate.depth >= it.depth {
			continue
		}
		gate.depth = it.depth
		for _, f := range gate.followers {
			work = append(work, item{f, it.depth + 1})
		}
	}
}

// ComputeNetDepth recomputes the cached network depth, the maximum gate
// depth over all outputs.
func (n *Net) ComputeNetDepth() int {
	n.depth = 0
	for _, id := range n.outputs {
		if d := n.MustGate(id).depth; d > n.depth {
			n.depth = d
		}
	}
	return n.depth
}

// NetDepth returns the cached network depth.
func (n *Net) NetDepth() int { return n.depth }

// ComputeAvgFanOut recomputes the cached average fan-out over inputs and
// inner gates.
func (n *Net) ComputeAvgFanOut() float64 {
	total, count := 0, 0
	for _, id := range n.inputs {
		total += n.MustGate(id).FanOut()
		count++
	}
	for _, id := range n.inner {
		total += n.MustGate(id).FanOut()
		count++
	}
	if count == 0 {
		n.avgFanOut = 0
		return 0
	}
	n.avgFanOut = float64(total) / float64(count)
	return n.avgFanOut
}

// AvgFanOut returns the cached average fan-out.
func (n *Net) AvgFanOut() float64 { return n.avgFanOut }

// ============================================================================
// Structural rewrites
// ============================================================================

// ChangeToEqGate rewrites g into its De Morgan equivalent: the function
// flips between AND and OR, the output inversion toggles and every fan-in
// inversion toggles. The network function is unchanged.
func (n *Net) ChangeToEqGate(g GateID) error {
	gate, ok := n.gates[g]
	if !ok {
		return fmt.Errorf("change to equivalent gate %d: %w", g, ErrGateNotFound)
	}
	gate.fn = gate.fn.Dual()
	gate.outInv = !gate.outInv
	for i := range gate.inputs {
		gate.inputs[i].Inverted = !gate.inputs[i].Inverted
	}
	return nil
}

// MergeEqGates folds the functionally equivalent gate drop into keep:
// drop's followers are re-homed onto keep and drop is deleted. Callers
// guarantee the two gates compute the same function of the same drivers.
func (n *Net) MergeEqGates(drop, keep GateID) error {
	src, ok := n.gates[drop]
	if !ok {
		return fmt.Errorf("merge gate %d: %w", drop, ErrGateNotFound)
	}
	dst, ok := n.gates[keep]
	if !ok {
		return fmt.Errorf("merge into gate %d: %w", keep, ErrGateNotFound)
	}
	for _, in := range src.inputs {
		removeFollower(n.MustGate(in.Driver), drop)
	}
	for _, f := range src.followers {
		n.SwapDriver(f, drop, keep)
		dst.followers = append(dst.followers, f)
	}
	n.delete(src)
	return nil
}

// RemOutput deletes the i-th primary output and its fan-in edges.
func (n *Net) RemOutput(i int) error {
	if i < 0 || i >= len(n.outputs) {
		return fmt.Errorf("output %d: %w", i, ErrGateNotFound)
	}
	g := n.MustGate(n.outputs[i])
	for _, in := range g.inputs {
		removeFollower(n.MustGate(in.Driver), g.id)
	}
	g.inputs = nil
	n.outputs = append(n.outputs[:i], n.outputs[i+1:]...)
	delete(n.gates, g.id)
	return nil
}

// delete removes g from the arena and its placement index. Edges must
// already be detached.
func (n *Net) delete(g *Gate) {
	switch g.placement {
	case PlaceInput:
		n.inputs = removeID(n.inputs, g.id)
	case PlaceOutput:
		n.outputs = removeID(n.outputs, g.id)
	default:
		n.inner = removeID(n.inner, g.id)
	}
	n.buffers = removeID(n.buffers, g.id)
	delete(n.gates, g.id)
}

func removeID(ids []GateID, id GateID) []GateID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
