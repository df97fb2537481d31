package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses, sets int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestHookRegistry(t *testing.T) {
	t.Cleanup(Reset)

	// Defaults are no-ops, not nil.
	if Pipeline() == nil || Cache() == nil || Store() == nil {
		t.Fatal("default hooks should be non-nil")
	}

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	ctx := context.Background()
	Cache().OnCacheHit(ctx, "net")
	Cache().OnCacheMiss(ctx, "net")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 42)

	if rec.hits != 1 || rec.misses != 2 || rec.sets != 1 {
		t.Errorf("recorded %d/%d/%d events, want 1/2/1", rec.hits, rec.misses, rec.sets)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "net")
	if rec.hits != 1 {
		t.Error("registering nil hooks should keep the previous ones")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	Reset()

	Cache().OnCacheHit(context.Background(), "net")
	if rec.hits != 0 {
		t.Error("Reset should restore the no-op hooks")
	}
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	var p NoopPipelineHooks
	p.OnLoadStart(ctx, "x")
	p.OnLoadComplete(ctx, "x", 0, time.Second, nil)
	p.OnPassStart(ctx, "move", 0)
	p.OnPassComplete(ctx, "move", 0, time.Second, nil)
	p.OnRenderStart(ctx, nil)
	p.OnRenderComplete(ctx, nil, time.Second, nil)
	NoopStoreHooks{}.OnReportSave(ctx, "id", time.Second, nil)
}
