// Package transform implements the structural rewrite passes of the
// synthesis flow: inverter relocation, dual-rail conversion, alternating
// spacer balancing, NAND collapse, SCOAP testability analysis and
// SCOAP-guided buffer insertion.
//
// Passes are plain functions over a [boolnet.Net] and mutate it in place.
// Several passes have ordering requirements: [ConvDualRail] expects the
// monotonic network produced by [MoveInverters], [EnableAltSpacer]
// expects a dual-rail network, and [ConvNAND] is only sound on a freshly
// loaded network whose constant-output gates have been removed.
package transform
