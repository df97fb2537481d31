package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/railsmith/railsmith/pkg/cache"
	"github.com/railsmith/railsmith/pkg/store"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestExecute(t *testing.T) {
	st := store.NewMemoryStore()
	r := NewRunner(nil, nil, st, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		SourceData: []byte(halfAdderAAG),
		Passes:     []string{PassMove, PassDual},
		Formats:    []string{FormatJSON, FormatBLIF},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(result.NetHash) != 64 {
		t.Errorf("NetHash = %q, want a sha256 hex digest", result.NetHash)
	}
	// 2 inputs grow rails under move, then dual doubles inner and output
	// gates: 4 inputs, 6 inner, 4 outputs.
	if result.Stats.GateCount != 14 {
		t.Errorf("GateCount = %d, want 14", result.Stats.GateCount)
	}
	if result.CacheInfo.NetHit || result.CacheInfo.RenderHit {
		t.Error("a null cache should never report hits")
	}
	for _, format := range []string{FormatJSON, FormatBLIF} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if len(result.Stats.PassTimes) != 2 {
		t.Errorf("PassTimes has %d entries, want 2", len(result.Stats.PassTimes))
	}

	if result.ReportID == "" {
		t.Fatal("ReportID should be set when a store is configured")
	}
	rep, err := st.Load(context.Background(), result.ReportID)
	if err != nil {
		t.Fatalf("loading the stored report: %v", err)
	}
	if rep.Gates != result.Stats.GateCount {
		t.Errorf("stored Gates = %d, want %d", rep.Gates, result.Stats.GateCount)
	}
	if rep.Netlist == nil {
		t.Error("stored report should carry the netlist")
	}
}

func TestExecuteScoapSum(t *testing.T) {
	r := NewRunner(nil, nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		SourceData: []byte(halfAdderAAG),
		Passes:     []string{PassScoap},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.ScoapSum != 26 {
		t.Errorf("ScoapSum = %d, want 26", result.ScoapSum)
	}
	if result.ReportID != "" {
		t.Error("ReportID should stay empty without a store")
	}
}

func TestExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil, quietLogger())
	defer r.Close()

	opts := Options{
		SourceData: []byte(halfAdderAAG),
		Passes:     []string{PassMove, PassScoap},
		Formats:    []string{FormatJSON, FormatBLIF},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.NetHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.NetHit {
		t.Error("second run should hit the netlist cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if second.NetHash != first.NetHash {
		t.Errorf("NetHash changed across runs: %q vs %q", second.NetHash, first.NetHash)
	}
	// The testability sum is recovered from the cached gate scores.
	if second.ScoapSum != first.ScoapSum {
		t.Errorf("ScoapSum = %d on the cached run, want %d", second.ScoapSum, first.ScoapSum)
	}
	if second.ScoapSum == 0 {
		t.Error("ScoapSum should be non-zero when the scoap pass ran")
	}
}

func TestExecuteRefresh(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil, quietLogger())
	defer r.Close()

	opts := Options{
		SourceData: []byte(halfAdderAAG),
		Passes:     []string{PassMove},
	}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("priming Execute: %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.NetHit || result.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil, quietLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("Execute without a source should fail")
	}
	if _, err := r.Execute(context.Background(), Options{
		SourceData: []byte(halfAdderAAG),
		Passes:     []string{PassBuffers},
	}); err == nil {
		t.Error("Execute with buffers before scoap should fail")
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil, quietLogger())
	if r.Cache == nil {
		t.Error("nil cache should default to a null cache")
	}
	if r.Keyer == nil {
		t.Error("nil keyer should default")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
