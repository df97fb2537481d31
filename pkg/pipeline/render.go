package pipeline

import (
	"bytes"
	"fmt"

	"github.com/railsmith/railsmith/pkg/boolnet"
	"github.com/railsmith/railsmith/pkg/library"
	"github.com/railsmith/railsmith/pkg/netio"
	"github.com/railsmith/railsmith/pkg/netwriter"
)

// Render generates output artifacts for the network in the requested formats.
func Render(n *boolnet.Net, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var lib *library.Library
	if opts.WantsFormat(FormatSpice) {
		var err error
		lib, err = library.Load(opts.Library)
		if err != nil {
			return nil, fmt.Errorf("load library: %w", err)
		}
	}

	// The DOT source feeds both raster formats, so build it at most once.
	var dot string
	needDOT := opts.WantsFormat(FormatDOT) || opts.WantsFormat(FormatSVG) || opts.WantsFormat(FormatPNG)
	if needDOT {
		dot = netwriter.ToDOT(n, opts.ColorMask())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(n, format, dot, lib, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderFormat produces a single artifact.
func renderFormat(n *boolnet.Net, format, dot string, lib *library.Library, opts Options) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return netwriter.RenderSVG(dot)
	case FormatPNG:
		return netwriter.RenderPNG(dot)
	case FormatBLIF:
		var buf bytes.Buffer
		if err := netwriter.WriteBLIF(&buf, n, opts.Name, opts.ColorMask()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatSpice:
		var buf bytes.Buffer
		if err := netwriter.WriteSpice(&buf, n, lib, opts.Name, opts.ColorMask()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := netio.EncodeJSON(&buf, netio.FromNet(n, opts.Name)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
