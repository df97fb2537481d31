// Package aag reads ASCII And-Inverter-Graph (AAG) netlists into a
// [boolnet.Net].
//
// The format is the ASCII variant of the AIGER interchange format: a
// header line "aag M I L O A" followed by I input literals, O output
// literals and A and-gate definitions. Literals encode a variable in
// their upper bits and an inversion in the lowest bit. Latches are not
// supported and constant outputs are dropped during loading.
package aag

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// ErrBadHeader indicates a malformed or inconsistent AAG header line.
var ErrBadHeader = errors.New("malformed aag header")

// ErrLatches indicates the design contains latches, which have no
// combinational equivalent here. Strip latches before loading.
var ErrLatches = errors.New("aag contains latches")

// ErrTruncated indicates the file ended before all declared sections
// were read.
var ErrTruncated = errors.New("truncated aag file")

type header struct {
	m, i, l, o, a int
}

// Read parses an ASCII AAG netlist and returns the network it declares.
// Inputs become buffer sources, and-gates become two-input AND gates and
// outputs become buffers reading their defining literal. Outputs wired
// to constant true or false are removed from the network.
func Read(r io.Reader) (*boolnet.Net, error) {
	sc := bufio.NewScanner(r)

	hdr, err := readHeader(sc)
	if err != nil {
		return nil, err
	}
	n := boolnet.NewNet(hdr.i, hdr.o, hdr.a)

	// Input literals are positional; the lines only restate 2,4,6,...
	for i := 0; i < hdr.i; i++ {
		if _, err := readLine(sc); err != nil {
			return nil, fmt.Errorf("inputs: %w", err)
		}
	}

	if err := readOutputs(sc, n, hdr); err != nil {
		return nil, err
	}
	if err := readAnds(sc, n, hdr); err != nil {
		return nil, err
	}
	return n, nil
}

func readHeader(sc *bufio.Scanner) (header, error) {
	line, err := readLine(sc)
	if err != nil {
		return header{}, fmt.Errorf("header: %w", err)
	}
	fields := strings.Fields(line)
	if len(fields) != 6 || fields[0] != "aag" {
		return header{}, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	var nums [5]int
	for i, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return header{}, fmt.Errorf("%w: %q", ErrBadHeader, line)
		}
		nums[i] = v
	}
	hdr := header{m: nums[0], i: nums[1], l: nums[2], o: nums[3], a: nums[4]}
	if hdr.m != hdr.i+hdr.l+hdr.a {
		return header{}, fmt.Errorf("%w: M != I+L+A in %q", ErrBadHeader, line)
	}
	if hdr.l != 0 {
		return header{}, ErrLatches
	}
	return hdr, nil
}

// literalGate resolves an AAG literal to its driving gate: variables up
// to I are primary inputs, the rest are and-gates.
func literalGate(n *boolnet.Net, hdr header, lit int) (*boolnet.Gate, error) {
	if lit/2 <= hdr.i {
		return n.Input(lit/2 - 1)
	}
	return n.InnerGate(lit/2 - hdr.i - 1)
}

func readOutputs(sc *bufio.Scanner, n *boolnet.Net, hdr header) error {
	for i := 0; i < hdr.o; i++ {
		lit, err := readInt(sc)
		if err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
		if lit == 0 || lit == 1 {
			// Constant output, nothing to compute.
			if err := n.RemOutput(i); err != nil {
				return err
			}
			i--
			hdr.o--
			continue
		}
		driver, err := literalGate(n, hdr, lit)
		if err != nil {
			return fmt.Errorf("output %d: literal %d: %w", i, lit, err)
		}
		out, err := n.Output(i)
		if err != nil {
			return err
		}
		n.NewInput(out.ID(), driver.ID(), lit%2 == 1)
	}
	return nil
}

func readAnds(sc *bufio.Scanner, n *boolnet.Net, hdr header) error {
	for i := 0; i < hdr.a; i++ {
		line, err := readLine(sc)
		if err != nil {
			return fmt.Errorf("and gate %d: %w", i, err)
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("and gate %d: want 3 literals, got %q", i, line)
		}
		var lits [3]int
		for j, f := range fields {
			if lits[j], err = strconv.Atoi(f); err != nil {
				return fmt.Errorf("and gate %d: %q: %w", i, line, err)
			}
		}

		g, err := n.InnerGate(lits[0]/2 - hdr.i - 1)
		if err != nil {
			return fmt.Errorf("and gate %d: literal %d: %w", i, lits[0], err)
		}
		g.SetFunction(boolnet.FnAND)

		for _, lit := range lits[1:] {
			driver, err := literalGate(n, hdr, lit)
			if err != nil {
				return fmt.Errorf("and gate %d: literal %d: %w", i, lit, err)
			}
			n.NewInput(g.ID(), driver.ID(), lit%2 == 1)
		}
	}
	return nil
}

func readLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", ErrTruncated
	}
	return sc.Text(), nil
}

func readInt(sc *bufio.Scanner) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, ErrTruncated
	}
	v, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, err
	}
	return v, nil
}
