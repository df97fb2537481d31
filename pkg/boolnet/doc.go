// Package boolnet provides the in-memory combinational gate network model
// used by all railsmith transformation passes and serializers.
//
// A [Net] owns every [Gate] it contains. Gates are addressed by stable
// integer handles ([GateID]); driver, follower, and complement links are
// plain IDs rather than pointers, so deleting a gate (which only happens
// through [Net.MergeEqGates]) can never leave a dangling reference behind —
// a stale ID simply fails the [Net.Gate] lookup.
//
// # Structure
//
// Each gate carries a logic function (BUFFER, AND, OR, XOR), a placement
// (primary input, inner node, primary output), an ordered fan-in list of
// (driver, inverted?) pairs, an ordered follower list, an output-inversion
// flag, an optional mutual complement link, its depth (longest path from a
// primary input), SCOAP testability figures, a simulated output value, a
// color bitmask for subgraph marking, and optional 2D placement coordinates.
//
// The two sides of every edge are kept symmetric: [Net.Connect] and
// [Net.Disconnect] always update the driver's follower list and the sink's
// fan-in list together. The lower-level [Net.AddFollow], [Net.RemFollow],
// and [Net.SwapDriver] operations update one side at a time and exist for
// transformation passes that re-home edges in several steps; callers must
// restore symmetry before returning.
//
// # Concurrency
//
// A Net is not safe for concurrent use. Transformation passes mutate the
// graph destructively; read-only access is safe only between passes.
package boolnet
