package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// artifactWriteParams bundles the inputs for writing rendered artifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source path, used to derive default output names
	output    string // output file (single format) or base path (multiple)
	cacheHit  bool
}

// writeArtifacts writes each rendered format to disk and prints the result.
// With a single format and an explicit output, the artifact goes exactly
// there; otherwise output (or the input basename) acts as the base path and
// the format becomes the extension.
func writeArtifacts(p artifactWriteParams) error {
	base := p.output
	if base == "" {
		base = strings.TrimSuffix(p.input, filepath.Ext(p.input))
	}

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing artifact for format %q", format)
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	return nil
}
