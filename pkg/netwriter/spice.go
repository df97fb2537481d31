package netwriter

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/railsmith/railsmith/pkg/boolnet"
	"github.com/railsmith/railsmith/pkg/library"
)

// ErrUnsupportedFanIn indicates a gate with more than two inputs reached
// the cell mapper, which only knows two-input cells.
var ErrUnsupportedFanIn = errors.New("fan-in above 2 not supported by cell mapping")

// WriteSpice serializes the network as a SPICE netlist using cell
// templates from lib. Gates map positively: an AND or OR cell plus
// explicit inverter cells for inverting pins and outputs. Gates must
// have at most two inputs; collapse wider gates first.
func WriteSpice(w io.Writer, n *boolnet.Net, lib *library.Library, title string, color boolnet.Color) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "* SPICE3 netlist of %s\n", title)

	bw.WriteString("*\n* *** input inverters ***\n*\n")
	for _, id := range n.InputIDs() {
		g := n.MustGate(id)
		if !g.HasColor(color) || g.FanIn() != 1 {
			// A plain input is just a wire.
			continue
		}
		fmt.Fprintf(bw, "* BEGIN :: Input %s\n\n", g.Name())
		if err := writeCell(bw, n, g, lib); err != nil {
			return err
		}
		fmt.Fprintf(bw, "* END :: Input %s\n\n", g.Name())
	}

	bw.WriteString("*\n* *** output inverters ***\n*\n")
	for _, id := range n.OutputIDs() {
		g := n.MustGate(id)
		if !g.HasColor(color) {
			continue
		}
		fmt.Fprintf(bw, "* BEGIN :: Output %s\n\n", g.Name())
		if err := writeCell(bw, n, g, lib); err != nil {
			return err
		}
		fmt.Fprintf(bw, "* END :: Output %s\n\n", g.Name())
	}

	bw.WriteString("*\n* *** gates ***\n*\n")
	for _, id := range n.InnerIDs() {
		g := n.MustGate(id)
		if !g.HasColor(color) {
			continue
		}
		fmt.Fprintf(bw, "* BEGIN :: Gate %s\n\n", g.Name())
		if err := writeCell(bw, n, g, lib); err != nil {
			return err
		}
		fmt.Fprintf(bw, "* END :: Gate %s\n\n", g.Name())
	}

	bw.WriteString(".end\n")
	return bw.Flush()
}

// writeCell emits the cell instances realizing one gate: the body cell
// and one inverter per inverting pin or output. Inverter nets are named
// <gate>_I<k>_OUT so instances stay locally unique.
func writeCell(bw *bufio.Writer, n *boolnet.Net, g *boolnet.Gate, lib *library.Library) error {
	if g.FanIn() > 2 {
		return fmt.Errorf("gate %s: %w", g.Name(), ErrUnsupportedFanIn)
	}

	switch g.Function() {
	case boolnet.FnAND, boolnet.FnOR:
		body, err := lib.Cell(g.Function(), false, g.FanIn())
		if err != nil {
			return fmt.Errorf("gate %s: %w", g.Name(), err)
		}

		vars := map[string]string{"NAME": g.Name() + "_I0"}
		if g.OutputInverting() {
			vars["OUT_0"] = g.Name() + "_I0_OUT"
		} else {
			vars["OUT_0"] = g.Name()
		}
		for j := 0; j < g.FanIn(); j++ {
			pin := fmt.Sprintf("IN_%d", j)
			if g.InputInverting(j) {
				vars[pin] = fmt.Sprintf("%s_I%d_OUT", g.Name(), j+1)
			} else {
				vars[pin] = n.MustGate(g.Driver(j)).Name()
			}
		}
		bw.WriteString(body.Instantiate(vars))

		if g.OutputInverting() {
			if err := writeInverter(bw, lib, g.Name()+"_I3", g.Name()+"_I0_OUT", g.Name()); err != nil {
				return fmt.Errorf("gate %s: %w", g.Name(), err)
			}
		}
		for j := 0; j < g.FanIn(); j++ {
			if !g.InputInverting(j) {
				continue
			}
			name := fmt.Sprintf("%s_I%d", g.Name(), j+1)
			err := writeInverter(bw, lib, name, n.MustGate(g.Driver(j)).Name(), name+"_OUT")
			if err != nil {
				return fmt.Errorf("gate %s: %w", g.Name(), err)
			}
		}
		return nil

	default: // buffer
		inverting := g.OutputInverting() != g.InputInverting(0)
		cell, err := lib.Cell(boolnet.FnBuffer, inverting, 1)
		if err != nil {
			return fmt.Errorf("gate %s: %w", g.Name(), err)
		}
		out := "OUT_0"
		if inverting {
			out = "IOUT_0"
		}
		bw.WriteString(cell.Instantiate(map[string]string{
			"NAME": g.Name() + "_I0",
			"IN_0": n.MustGate(g.Driver(0)).Name(),
			out:    g.Name(),
		}))
		return nil
	}
}

func writeInverter(bw *bufio.Writer, lib *library.Library, name, in, out string) error {
	inv, err := lib.Cell(boolnet.FnBuffer, true, 1)
	if err != nil {
		return err
	}
	bw.WriteString(inv.Instantiate(map[string]string{
		"NAME":   name,
		"IN_0":   in,
		"IOUT_0": out,
	}))
	return nil
}
