package boolnet

import "errors"

var (
	// ErrGateNotFound is returned by [Net.Input], [Net.Output], and
	// [Net.InnerGate] when the requested index does not resolve to a gate.
	// Queries never answer with a sentinel gate; a missing index is always
	// an explicit error.
	ErrGateNotFound = errors.New("gate not found")

	// ErrUnknownGate is returned by edge operations when one of the
	// referenced gate IDs is not owned by the net.
	ErrUnknownGate = errors.New("unknown gate ID")
)
