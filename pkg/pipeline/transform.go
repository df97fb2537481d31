package pipeline

import (
	"fmt"
	"time"

	"github.com/railsmith/railsmith/pkg/boolnet"
	"github.com/railsmith/railsmith/pkg/boolnet/transform"
)

// ApplyPasses runs the configured pass sequence over the network in order.
// It returns the per-pass durations and, when the scoap pass ran, the summed
// testability of the inner gates.
func ApplyPasses(n *boolnet.Net, opts Options) (map[string]time.Duration, uint64, error) {
	if err := opts.ValidateForTransform(); err != nil {
		return nil, 0, err
	}

	times := make(map[string]time.Duration, len(opts.Passes))
	var scoapSum uint64

	for _, pass := range opts.Passes {
		start := time.Now()
		sum, err := RunPass(n, pass, opts.Buffers)
		if err != nil {
			return times, scoapSum, err
		}
		if pass == PassScoap {
			scoapSum = sum
		}
		times[pass] = time.Since(start)
	}

	return times, scoapSum, nil
}

// RunPass applies a single named pass to the network. The buffers argument
// only matters for the "buffers" pass. The returned sum is non-zero only for
// the "scoap" pass.
func RunPass(n *boolnet.Net, pass string, buffers int) (uint64, error) {
	switch pass {
	case PassMove:
		transform.MoveInverters(n)
	case PassDual:
		transform.ConvDualRail(n)
	case PassSpacer:
		transform.EnableAltSpacer(n)
	case PassNAND:
		transform.ConvNAND(n)
	case PassScoap:
		return transform.ComputeSumScoap(n), nil
	case PassBuffers:
		transform.InsertBuffsByScoap(n, buffers)
	default:
		return 0, fmt.Errorf("unknown pass: %q", pass)
	}
	return 0, nil
}
