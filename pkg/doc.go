// Package pkg provides the core libraries for Railsmith network synthesis.
//
// # Overview
//
// Railsmith rewrites combinational gate networks for dual-rail asynchronous
// logic: it relocates inverters, duplicates the network into complementary
// rails, balances the rails for alternating spacers, collapses gates into
// NANDs and scores the result with SCOAP testability measures. The pkg
// directory is organized into four main areas:
//
//  1. [boolnet] - Domain logic (gate networks, simulation, rewriting passes)
//  2. [aag], [netio], [netwriter], [library] - Input and output formats
//  3. [cache], [store], [observability] - Infrastructure
//  4. [pipeline] - Orchestration (load → transform → render)
//
// # Architecture
//
// The typical data flow through Railsmith:
//
//	AIGER ASCII / JSON netlist
//	         ↓
//	    [aag] or [netio] package (load the network)
//	         ↓
//	    [boolnet/transform] package (rewriting passes)
//	         ↓
//	    [netwriter] or [netio] package (serialize)
//	         ↓
//	    DOT/SVG/PNG/BLIF/SPICE/JSON output
//
// # Quick Start
//
// Load a network, convert it to dual-rail form and write BLIF:
//
//	import (
//	    "os"
//	    "github.com/railsmith/railsmith/pkg/aag"
//	    "github.com/railsmith/railsmith/pkg/boolnet/transform"
//	    "github.com/railsmith/railsmith/pkg/netwriter"
//	)
//
//	// 1. Load the AIGER source
//	f, _ := os.Open("adder.aag")
//	n, _ := aag.Read(f)
//
//	// 2. Transform the network
//	transform.MoveInverters(n)
//	transform.ConvDualRail(n)
//
//	// 3. Write the result
//	netwriter.WriteBLIF(os.Stdout, n, "adder", 0)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [boolnet] - Gate network structure: gates with typed functions, pin and
// output inversions, complement links between rails, depth tracking,
// simulation, coloring and rectangular placement.
//
// [boolnet/transform] - Network rewriting passes: inverter relocation,
// dual-rail conversion, alternating-spacer balancing, NAND collapse, SCOAP
// testability scoring and SCOAP-guided buffer insertion.
//
// ## Formats
//
// [aag] - AIGER ASCII (.aag) reader for and-inverter graphs.
//
// [netio] - JSON netlist serialization preserving the full gate state,
// the interchange format between pipeline runs.
//
// [netwriter] - Output writers: Graphviz DOT (with SVG/PNG rendering),
// BLIF for logic synthesis tools and SPICE decks from cell templates.
//
// [library] - TOML standard-cell template libraries for SPICE export.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of transformed netlists and rendered
// artifacts. FileCache for CLI use, RedisCache for the service, NullCache
// for tests.
//
// [store] - Run report persistence. MemoryStore for tests and single runs,
// MongoStore for shared deployments.
//
// [observability] - Hook points for pipeline, cache and store events.
//
// [pipeline] - Complete synthesis pipeline (load → transform → render) used
// by CLI and API. Ensures consistent behavior across all entry points.
package pkg
