// Package netwriter serializes a [boolnet.Net] to external circuit
// formats: BLIF for logic synthesis tools, Graphviz DOT (with in-process
// SVG and PNG rendering) for inspection, and SPICE netlists backed by a
// [library.Library] of cell templates.
//
// Every writer takes a color mask and emits only gates carrying that
// color; [boolnet.ColorNone] selects the whole network.
package netwriter
