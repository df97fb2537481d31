package boolnet

import "math"

// GateID is a stable handle to a gate inside its owning [Net].
// IDs are never reused, so a deleted gate's ID stays invalid forever.
type GateID int

// NoGate is the zero complement link: a gate without a complement.
const NoGate GateID = -1

// Infinity is the sentinel for an uncomputed SCOAP figure. Controllability
// and observability only ever decrease from this value.
const Infinity uint32 = math.MaxUint32

// Function is the logic function computed by a gate. The domain is closed:
// transformation passes match exhaustively over these four values.
type Function int

const (
	// FnBuffer copies its first input to the output.
	FnBuffer Function = iota
	// FnAND drives the output with the conjunction of all inputs.
	FnAND
	// FnOR drives the output with the disjunction of all inputs.
	FnOR
	// FnXOR drives the output with the parity of all inputs.
	FnXOR
)

// String returns the short function name used by serializers.
func (f Function) String() string {
	switch f {
	case FnAND:
		return "AND"
	case FnOR:
		return "OR"
	case FnXOR:
		return "XOR"
	default:
		return "BUFF"
	}
}

// Dual returns the De Morgan dual of f: AND↔OR. BUFFER and XOR are
// self-dual for the purposes of complementary gate construction.
func (f Function) Dual() Function {
	switch f {
	case FnAND:
		return FnOR
	case FnOR:
		return FnAND
	default:
		return f
	}
}

// Placement is a gate's position class inside the network.
type Placement int

const (
	// PlaceInput marks a primary input.
	PlaceInput Placement = iota
	// PlaceInner marks an inner node.
	PlaceInner
	// PlaceOutput marks a primary output.
	PlaceOutput
)

// String returns the placement name.
func (p Placement) String() string {
	switch p {
	case PlaceInput:
		return "INPUT"
	case PlaceOutput:
		return "OUTPUT"
	default:
		return "INNER"
	}
}

// Color is a bitmask marking gate membership in named subgraphs, e.g. the
// base half of a dual-rail network. Serializers use colors to restrict
// traversal without the core knowing about output formats.
type Color int

// Predefined colors. Callers may define further bits above ColorDualBase.
const (
	ColorNone     Color = 0
	ColorInTree   Color = 1 << 0
	ColorOutTree  Color = 1 << 1
	ColorDualBase Color = 1 << 2
)

// Scoap holds the SCOAP testability triple of a gate: the difficulty of
// driving the gate to 0 (CC0) and to 1 (CC1), and the difficulty of
// observing it at a primary output (CO).
type Scoap struct {
	CC0 uint32
	CC1 uint32
	CO  uint32
}

// Input is one fan-in slot of a gate: the driving gate and whether the
// edge inverts the driver's value.
type Input struct {
	Driver   GateID
	Inverted bool
}

// Gate is one node of a [Net]. Gates are created through [Net.NewGate] (or
// the Net constructor) and must not be copied; all cross-gate structure is
// manipulated through Net methods so both sides of every edge stay in sync.
type Gate struct {
	id        GateID
	name      string
	fn        Function
	placement Placement

	inputs    []Input
	followers []GateID
	outInv    bool

	complement GateID
	depth      int
	scoap      Scoap
	value      bool
	color      Color

	placed bool
	x, y   int
}

func newGate(id GateID, name string, fn Function, placement Placement) *Gate {
	return &Gate{
		id:         id,
		name:       name,
		fn:         fn,
		placement:  placement,
		complement: NoGate,
		scoap:      Scoap{CC0: Infinity, CC1: Infinity, CO: Infinity},
	}
}

// ID returns the gate's handle inside its owning net.
func (g *Gate) ID() GateID { return g.id }

// Name returns the gate's human-readable alias.
func (g *Gate) Name() string { return g.name }

// SetName replaces the gate's alias.
func (g *Gate) SetName(name string) { g.name = name }

// Function returns the gate's logic function.
func (g *Gate) Function() Function { return g.fn }

// SetFunction replaces the gate's logic function.
func (g *Gate) SetFunction(fn Function) { g.fn = fn }

// Placement returns the gate's position class.
func (g *Gate) Placement() Placement { return g.placement }

// FanIn returns the number of fan-in slots.
func (g *Gate) FanIn() int { return len(g.inputs) }

// FanOut returns the number of follower entries. A gate feeding two pins
// of the same follower appears twice.
func (g *Gate) FanOut() int { return len(g.followers) }

// InputAt returns the fan-in slot at index i. The second result is false
// when i is out of range.
func (g *Gate) InputAt(i int) (Input, bool) {
	if i < 0 || i >= len(g.inputs) {
		return Input{Driver: NoGate}, false
	}
	return g.inputs[i], true
}

// Driver returns the driving gate of fan-in slot i, or NoGate when i is
// out of range.
func (g *Gate) Driver(i int) GateID {
	if i < 0 || i >= len(g.inputs) {
		return NoGate
	}
	return g.inputs[i].Driver
}

// InputInverting reports whether fan-in slot i inverts its driver.
// Out-of-range indices report false.
func (g *Gate) InputInverting(i int) bool {
	if i < 0 || i >= len(g.inputs) {
		return false
	}
	return g.inputs[i].Inverted
}

// SetInputInverting marks fan-in slot i as inverting.
func (g *Gate) SetInputInverting(i int) {
	if i >= 0 && i < len(g.inputs) {
		g.inputs[i].Inverted = true
	}
}

// SetInputNonInverting clears the inversion flag of fan-in slot i.
func (g *Gate) SetInputNonInverting(i int) {
	if i >= 0 && i < len(g.inputs) {
		g.inputs[i].Inverted = false
	}
}

// Follower returns the follower entry at index i, or NoGate when i is out
// of range.
func (g *Gate) Follower(i int) GateID {
	if i < 0 || i >= len(g.followers) {
		return NoGate
	}
	return g.followers[i]
}

// OutputInverting reports whether the gate's output is inverting.
func (g *Gate) OutputInverting() bool { return g.outInv }

// SetOutputInverting marks the gate's output as inverting.
func (g *Gate) SetOutputInverting() { g.outInv = true }

// SetOutputNonInverting clears the output inversion.
func (g *Gate) SetOutputNonInverting() { g.outInv = false }

// Complement returns the gate's complementary partner, or NoGate.
func (g *Gate) Complement() GateID { return g.complement }

// SetComplement links the gate to its complementary partner. Complement
// links must be mutual or absent; callers set both directions.
func (g *Gate) SetComplement(id GateID) { g.complement = id }

// Depth returns the length of the longest path from a primary input.
func (g *Gate) Depth() int { return g.depth }

// ResetDepth forces the gate's depth back to zero. Used for synthesized
// input rails, which sit at the input boundary regardless of their driver.
func (g *Gate) ResetDepth() { g.depth = 0 }

// ForceDepth overwrites the gate's depth without propagating to
// followers. Deserializers use it to restore stored depths; passes use
// [Net.SetDepth] instead.
func (g *Gate) ForceDepth(d int) { g.depth = d }

// Scoap returns the gate's SCOAP triple.
func (g *Gate) Scoap() Scoap { return g.scoap }

// SetControllability stores the controllability pair. Propagation into
// followers is the responsibility of the SCOAP pass.
func (g *Gate) SetControllability(cc0, cc1 uint32) {
	g.scoap.CC0 = cc0
	g.scoap.CC1 = cc1
}

// SetObservability stores the observability figure.
func (g *Gate) SetObservability(co uint32) { g.scoap.CO = co }

// Value returns the most recently simulated output value.
func (g *Gate) Value() bool { return g.value }

// SetValue forces the gate's output value. Used to drive primary inputs
// before simulation and for fault injection.
func (g *Gate) SetValue(v bool) { g.value = v }

// HasColor reports whether the gate carries any of the given color bits.
// The zero color matches every gate.
func (g *Gate) HasColor(c Color) bool {
	if c == ColorNone {
		return true
	}
	return g.color&c != 0
}

// AddColor marks the gate with the given color bits.
func (g *Gate) AddColor(c Color) { g.color |= c }

// PlaceAt assigns 2D placement coordinates to the gate.
func (g *Gate) PlaceAt(x, y int) {
	g.placed = true
	g.x = x
	g.y = y
}

// Placed reports whether the gate has placement coordinates.
func (g *Gate) Placed() bool { return g.placed }

// PlaceX returns the x coordinate, or -1 when the gate is not placed.
func (g *Gate) PlaceX() int {
	if !g.placed {
		return -1
	}
	return g.x
}

// PlaceY returns the y coordinate, or -1 when the gate is not placed.
func (g *Gate) PlaceY() int {
	if !g.placed {
		return -1
	}
	return g.y
}
