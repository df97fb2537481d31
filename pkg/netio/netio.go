// Package netio converts a [boolnet.Net] to and from a flat, ordered
// netlist document. The document marshals to JSON for the HTTP API and
// file artifacts and carries bson tags so run reports can embed it
// unchanged in MongoDB.
package netio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// ErrBadNetlist indicates a document that does not describe a coherent
// network, e.g. a pin referring to a gate that is not declared.
var ErrBadNetlist = errors.New("malformed netlist")

// Pin is one fan-in slot, referring to the driver by its position in the
// gate list.
type Pin struct {
	Driver   int  `json:"driver" bson:"driver"`
	Inverted bool `json:"inverted,omitempty" bson:"inverted,omitempty"`
}

// Record describes one gate. Positions in the gate list are the document
// identity, so gate order is significant: inputs keep their simulation
// bit order and outputs their output order.
type Record struct {
	Name       string `json:"name" bson:"name"`
	Function   string `json:"function" bson:"function"`
	Placement  string `json:"placement" bson:"placement"`
	Inputs     []Pin  `json:"inputs,omitempty" bson:"inputs,omitempty"`
	OutputInv  bool   `json:"outputInverting,omitempty" bson:"outputInverting,omitempty"`
	Complement *int   `json:"complement,omitempty" bson:"complement,omitempty"`
	Depth      int    `json:"depth" bson:"depth"`
	Buffer     bool   `json:"buffer,omitempty" bson:"buffer,omitempty"`
	CC0        uint32 `json:"cc0,omitempty" bson:"cc0,omitempty"`
	CC1        uint32 `json:"cc1,omitempty" bson:"cc1,omitempty"`
	CO         uint32 `json:"co,omitempty" bson:"co,omitempty"`
}

// Netlist is the document form of a network.
type Netlist struct {
	Name  string   `json:"name,omitempty" bson:"name,omitempty"`
	Gates []Record `json:"gates" bson:"gates"`
}

// FromNet flattens a network into a document. Gates are listed inputs
// first, then inner gates, then outputs.
func FromNet(n *boolnet.Net, name string) *Netlist {
	order := make([]boolnet.GateID, 0, n.NumGates())
	order = append(order, n.InputIDs()...)
	order = append(order, n.InnerIDs()...)
	order = append(order, n.OutputIDs()...)

	index := make(map[boolnet.GateID]int, len(order))
	for i, id := range order {
		index[id] = i
	}
	buffers := make(map[boolnet.GateID]bool, n.NumBuffers())
	for _, id := range n.BufferIDs() {
		buffers[id] = true
	}

	nl := &Netlist{Name: name, Gates: make([]Record, 0, len(order))}
	for _, id := range order {
		g := n.MustGate(id)
		rec := Record{
			Name:      g.Name(),
			Function:  g.Function().String(),
			Placement: g.Placement().String(),
			OutputInv: g.OutputInverting(),
			Depth:     g.Depth(),
			Buffer:    buffers[id],
		}
		for j := 0; j < g.FanIn(); j++ {
			rec.Inputs = append(rec.Inputs, Pin{Driver: index[g.Driver(j)], Inverted: g.InputInverting(j)})
		}
		if c := g.Complement(); c != boolnet.NoGate {
			ci := index[c]
			rec.Complement = &ci
		}
		if s := g.Scoap(); s.CC0 != boolnet.Infinity || s.CC1 != boolnet.Infinity || s.CO != boolnet.Infinity {
			rec.CC0, rec.CC1, rec.CO = s.CC0, s.CC1, s.CO
		}
		nl.Gates = append(nl.Gates, rec)
	}
	return nl
}

// ToNet rebuilds a network from a document.
func (nl *Netlist) ToNet() (*boolnet.Net, error) {
	n := boolnet.NewNet(0, 0, 0)
	ids := make([]boolnet.GateID, len(nl.Gates))

	for i, rec := range nl.Gates {
		fn, err := parseFunction(rec.Function)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		pl, err := parsePlacement(rec.Placement)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		g := n.NewGate(rec.Name, fn, pl)
		if rec.OutputInv {
			g.SetOutputInverting()
		}
		if rec.Buffer {
			n.RegisterBuffer(g)
		}
		if rec.CC0 != 0 || rec.CC1 != 0 || rec.CO != 0 {
			g.SetControllability(rec.CC0, rec.CC1)
			g.SetObservability(rec.CO)
		}
		ids[i] = g.ID()
	}

	for i, rec := range nl.Gates {
		for _, pin := range rec.Inputs {
			if pin.Driver < 0 || pin.Driver >= len(ids) {
				return nil, fmt.Errorf("gate %d: pin driver %d: %w", i, pin.Driver, ErrBadNetlist)
			}
			if err := n.Connect(ids[pin.Driver], ids[i], pin.Inverted); err != nil {
				return nil, err
			}
		}
		if rec.Complement != nil {
			ci := *rec.Complement
			if ci < 0 || ci >= len(ids) {
				return nil, fmt.Errorf("gate %d: complement %d: %w", i, ci, ErrBadNetlist)
			}
			n.MustGate(ids[i]).SetComplement(ids[ci])
		}
	}

	// Wiring propagated provisional depths; restore the stored ones so
	// boundary rails keep their pinned depth.
	for i, rec := range nl.Gates {
		n.MustGate(ids[i]).ForceDepth(rec.Depth)
	}

	n.ComputeNetDepth()
	return n, nil
}

// EncodeJSON writes the document as indented JSON.
func EncodeJSON(w io.Writer, nl *Netlist) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nl)
}

// DecodeJSON reads a document from JSON.
func DecodeJSON(r io.Reader) (*Netlist, error) {
	var nl Netlist
	if err := json.NewDecoder(r).Decode(&nl); err != nil {
		return nil, fmt.Errorf("decode netlist: %w", err)
	}
	return &nl, nil
}

func parseFunction(s string) (boolnet.Function, error) {
	switch s {
	case "AND":
		return boolnet.FnAND, nil
	case "OR":
		return boolnet.FnOR, nil
	case "XOR":
		return boolnet.FnXOR, nil
	case "BUFF", "BUFFER":
		return boolnet.FnBuffer, nil
	default:
		return 0, fmt.Errorf("%w: unknown function %q", ErrBadNetlist, s)
	}
}

func parsePlacement(s string) (boolnet.Placement, error) {
	switch s {
	case "INPUT":
		return boolnet.PlaceInput, nil
	case "INNER":
		return boolnet.PlaceInner, nil
	case "OUTPUT":
		return boolnet.PlaceOutput, nil
	default:
		return 0, fmt.Errorf("%w: unknown placement %q", ErrBadNetlist, s)
	}
}
