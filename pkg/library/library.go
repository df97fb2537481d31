// Package library loads standard-cell template libraries from TOML and
// instantiates cells for netlist serialization.
//
// A library file declares one [[cell]] table per template. Templates are
// plain text with [NAME], [IN_0], [IN_1] and [OUT_0] placeholders that
// are substituted per gate instance at write time.
package library

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// ErrMissingCell indicates no template in the library matches the
// requested function, polarity and fan-in.
var ErrMissingCell = errors.New("cell not in library")

// Cell is one standard-cell template.
type Cell struct {
	Name     string `toml:"name"`
	Function string `toml:"function"`
	FanIn    int    `toml:"fanin"`
	Spice    string `toml:"spice"`
}

// Instantiate substitutes the given placeholder values into the cell's
// SPICE body. Placeholder keys are written without brackets, e.g. "NAME".
func (c Cell) Instantiate(vars map[string]string) string {
	body := c.Spice
	for k, v := range vars {
		body = strings.ReplaceAll(body, "["+k+"]", v)
	}
	return body
}

type libraryFile struct {
	Cells []Cell `toml:"cell"`
}

type cellKey struct {
	function string
	fanIn    int
}

// Library is an indexed set of cell templates.
type Library struct {
	name  string
	cells map[cellKey]Cell
}

// Load reads a TOML cell library from path.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	return Parse(data, path)
}

// Parse builds a library from raw TOML. The name is used in error and
// log messages only.
func Parse(data []byte, name string) (*Library, error) {
	var file libraryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse library %s: %w", name, err)
	}
	lib := &Library{name: name, cells: make(map[cellKey]Cell, len(file.Cells))}
	for _, c := range file.Cells {
		if c.Name == "" || c.Function == "" {
			return nil, fmt.Errorf("parse library %s: cell without name or function", name)
		}
		lib.cells[cellKey{strings.ToUpper(c.Function), c.FanIn}] = c
	}
	return lib, nil
}

// Name returns the library's source name.
func (l *Library) Name() string { return l.name }

// Len returns the number of templates.
func (l *Library) Len() int { return len(l.cells) }

// Cell returns the template for a gate function with the given polarity
// and fan-in. Inverting AND, OR and BUFFER map to NAND, NOR and INV.
func (l *Library) Cell(fn boolnet.Function, inverting bool, fanIn int) (Cell, error) {
	name := cellName(fn, inverting)
	c, ok := l.cells[cellKey{name, fanIn}]
	if !ok {
		return Cell{}, fmt.Errorf("%s/%d: %w", name, fanIn, ErrMissingCell)
	}
	return c, nil
}

func cellName(fn boolnet.Function, inverting bool) string {
	switch fn {
	case boolnet.FnAND:
		if inverting {
			return "NAND"
		}
		return "AND"
	case boolnet.FnOR:
		if inverting {
			return "NOR"
		}
		return "OR"
	case boolnet.FnXOR:
		if inverting {
			return "XNOR"
		}
		return "XOR"
	default:
		if inverting {
			return "INV"
		}
		return "BUF"
	}
}
