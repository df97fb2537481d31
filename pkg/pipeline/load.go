package pipeline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/railsmith/railsmith/pkg/aag"
	"github.com/railsmith/railsmith/pkg/boolnet"
	"github.com/railsmith/railsmith/pkg/netio"
)

// ReadSource returns the raw source bytes for a pipeline run, either the
// inline content or the contents of the source file.
func ReadSource(opts Options) ([]byte, error) {
	if len(opts.SourceData) > 0 {
		return opts.SourceData, nil
	}
	data, err := os.ReadFile(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}

// Load parses raw source bytes into a network. The format is detected from
// the content: AIGER ASCII sources start with an "aag" header, everything
// else is treated as a JSON netlist.
func Load(data []byte, opts Options) (*boolnet.Net, error) {
	if isAAG(data) {
		n, err := aag.Read(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("load aag: %w", err)
		}
		return n, nil
	}

	nl, err := netio.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load netlist: %w", err)
	}
	n, err := nl.ToNet()
	if err != nil {
		return nil, fmt.Errorf("load netlist: %w", err)
	}
	return n, nil
}

// isAAG reports whether data looks like an AIGER ASCII file.
func isAAG(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("aag "))
}
