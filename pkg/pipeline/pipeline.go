// Package pipeline provides the core synthesis pipeline for Railsmith.
//
// This package implements the complete load → transform → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a network from an AIGER ASCII file or a JSON netlist
//  2. Transform: Apply a caller-chosen sequence of rewriting passes
//  3. Render: Generate output in various formats (DOT, SVG, PNG, BLIF,
//     SPICE, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "adder.aag",
//	    Passes:  []string{"move", "dual", "spacer"},
//	    Formats: []string{"blif"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blif := result.Artifacts["blif"]
//
// Run individual stages:
//
//	// Load only
//	n, err := pipeline.Load(raw, opts)
//
//	// Transform an existing network
//	timings, err := pipeline.ApplyPasses(n, opts)
//
//	// Render an existing network
//	artifacts, err := pipeline.Render(n, opts)
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/railsmith/railsmith/pkg/boolnet"
	"github.com/railsmith/railsmith/pkg/cache"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBuffers is the number of buffers inserted by the "buffers"
	// pass when the caller does not say otherwise.
	DefaultBuffers = 10

	// DefaultName is the network name used when neither the options nor
	// the source path provide one.
	DefaultName = "net"
)

// Pass constants for the transform stage. The order in which a caller
// lists them is the order in which they run.
const (
	PassMove    = "move"    // relocate inverters toward the inputs
	PassDual    = "dual"    // convert to dual-rail encoding
	PassSpacer  = "spacer"  // balance rails for alternating spacers
	PassNAND    = "nand"    // collapse AND+inverter pairs into NANDs
	PassScoap   = "scoap"   // compute SCOAP testability measures
	PassBuffers = "buffers" // insert buffers at SCOAP hotspots
)

// ValidPasses is the set of supported transform passes.
var ValidPasses = map[string]bool{
	PassMove:    true,
	PassDual:    true,
	PassSpacer:  true,
	PassNAND:    true,
	PassScoap:   true,
	PassBuffers: true,
}

// Format constants for output formats.
const (
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatBLIF  = "blif"
	FormatSpice = "spice"
	FormatJSON  = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:   true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatBLIF:  true,
	FormatSpice: true,
	FormatJSON:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the synthesis pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source     string `json:"source,omitempty"`      // path to a .aag or .json netlist
	SourceData []byte `json:"source_data,omitempty"` // inline netlist content (overrides Source)
	Name       string `json:"name,omitempty"`        // network name (defaults to the source basename)
	Refresh    bool   `json:"refresh,omitempty"`     // bypass the cache and recompute

	// Transform options
	Passes  []string `json:"passes,omitempty"`
	Buffers int      `json:"buffers,omitempty"` // buffer count for the "buffers" pass

	// Render options
	Formats []string `json:"formats,omitempty"`
	Library string   `json:"library,omitempty"` // TOML cell library, required for spice output
	Color   int      `json:"color,omitempty"`   // restrict output to gates carrying this color mask

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Net is the transformed network.
	Net *boolnet.Net

	// NetHash is the content hash of the transformed netlist.
	NetHash string

	// ScoapSum is the summed SCOAP testability over the inner gates.
	// It is zero unless the scoap pass ran.
	ScoapSum uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo

	// ReportID is the identifier of the stored run report, if a store
	// was configured.
	ReportID string
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GateCount     int
	Depth         int
	AvgFanOut     float64
	LoadTime      time.Duration
	TransformTime time.Duration
	RenderTime    time.Duration

	// PassTimes records the duration of each transform pass by name.
	PassTimes map[string]time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	NetHit    bool // Whether the transformed netlist came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png, blif, spice, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePass checks that a pass name is valid.
func ValidatePass(pass string) error {
	if !ValidPasses[pass] {
		return fmt.Errorf("invalid pass: %q (must be one of: move, dual, spacer, nand, scoap, buffers)", pass)
	}
	return nil
}

// ValidatePasses checks that all pass names are valid.
func ValidatePasses(passes []string) error {
	for _, p := range passes {
		if err := ValidatePass(p); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForTransform(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" && len(o.SourceData) == 0 {
		return fmt.Errorf("source or source_data is required")
	}
	if o.Name == "" {
		o.Name = sourceName(o.Source)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForTransform validates the pass sequence and sets transform defaults.
func (o *Options) ValidateForTransform() error {
	if err := ValidatePasses(o.Passes); err != nil {
		return err
	}
	// Buffer insertion ranks gates by their testability scores, so the
	// scores must exist before it runs.
	scoapSeen := false
	for _, p := range o.Passes {
		if p == PassScoap {
			scoapSeen = true
		}
		if p == PassBuffers && !scoapSeen {
			return fmt.Errorf("the buffers pass requires a preceding scoap pass")
		}
	}
	if o.Buffers == 0 {
		o.Buffers = DefaultBuffers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender validates formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.WantsFormat(FormatSpice) && o.Library == "" {
		return fmt.Errorf("library is required for spice output")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// WantsFormat returns true if format is among the requested outputs.
func (o *Options) WantsFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// WantsPass returns true if pass is part of the requested sequence.
func (o *Options) WantsPass(pass string) bool {
	for _, p := range o.Passes {
		if p == pass {
			return true
		}
	}
	return false
}

// ColorMask returns the requested color restriction as a gate color.
// Zero means no restriction.
func (o *Options) ColorMask() boolnet.Color {
	return boolnet.Color(o.Color)
}

// NetKeyOpts returns cache key options for the transform stage.
func (o *Options) NetKeyOpts() cache.NetKeyOpts {
	return cache.NetKeyOpts{
		Passes:  o.Passes,
		Buffers: o.Buffers,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Library: o.Library,
		Color:   o.Color,
	}
}

// sourceName derives a network name from a source path.
func sourceName(source string) string {
	if source == "" {
		return DefaultName
	}
	base := filepath.Base(source)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		return DefaultName
	}
	return base
}
