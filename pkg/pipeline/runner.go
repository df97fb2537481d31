package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/railsmith/railsmith/pkg/boolnet"
	"github.com/railsmith/railsmith/pkg/cache"
	"github.com/railsmith/railsmith/pkg/netio"
	"github.com/railsmith/railsmith/pkg/observability"
	"github.com/railsmith/railsmith/pkg/store"
)

// Runner encapsulates pipeline execution with caching and report storage.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, store and logger - it
// doesn't hold pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer and store.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If st is nil, run reports are not persisted.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Execute runs the complete load → transform → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	raw, err := ReadSource(opts)
	if err != nil {
		return nil, err
	}
	sourceHash := cache.Hash(raw)

	// Stages 1+2: Load and transform, as a unit. The transformed netlist
	// is what gets cached, so a cache hit skips the load entirely.
	transformStart := time.Now()
	n, netData, netHit, err := r.transformWithCache(ctx, raw, sourceHash, opts, result)
	if err != nil {
		return nil, err
	}
	result.Net = n
	result.NetHash = cache.Hash(netData)
	result.CacheInfo.NetHit = netHit
	if netHit {
		result.Stats.TransformTime = time.Since(transformStart)
	}
	result.Stats.GateCount = n.NumGates()
	result.Stats.Depth = n.ComputeNetDepth()
	result.Stats.AvgFanOut = n.ComputeAvgFanOut()
	if opts.WantsPass(PassScoap) && result.ScoapSum == 0 {
		result.ScoapSum = innerScoapSum(n)
	}

	r.Logger.Info("transformed network",
		"gates", result.Stats.GateCount,
		"depth", result.Stats.Depth,
		"passes", opts.Passes,
		"cached", netHit,
		"duration", result.Stats.LoadTime+result.Stats.TransformTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.renderWithCache(ctx, n, result.NetHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	// Persist the run report if a store is configured.
	if r.Store != nil {
		id, err := r.saveReport(ctx, sourceHash, opts, result)
		if err != nil {
			// A failed report save does not invalidate the run.
			r.Logger.Warn("failed to store run report", "err", err)
		} else {
			result.ReportID = id
		}
	}

	return result, nil
}

// transformWithCache loads the source and applies the pass sequence, serving
// the transformed netlist from cache when possible. It returns the network
// together with its serialized form, which doubles as the render cache key
// input.
func (r *Runner) transformWithCache(ctx context.Context, raw []byte, sourceHash string, opts Options, result *Result) (*boolnet.Net, []byte, bool, error) {
	cacheKey := r.Keyer.NetKey(sourceHash, opts.NetKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cacheKey)
			if nl, err := netio.DecodeJSON(bytes.NewReader(data)); err == nil {
				if n, err := nl.ToNet(); err == nil {
					return n, data, true, nil
				}
			}
			// A corrupt entry falls through to recompute.
		} else {
			observability.Cache().OnCacheMiss(ctx, cacheKey)
		}
	}

	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Name)
	n, err := Load(raw, opts)
	loadTime := time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, opts.Name, gateCount(n), loadTime, err)
	if err != nil {
		return nil, nil, false, err
	}
	result.Stats.LoadTime = loadTime

	r.Logger.Info("loaded network",
		"source", opts.Name,
		"inputs", n.NumInputs(),
		"outputs", n.NumOutputs(),
		"gates", n.NumGates(),
		"duration", loadTime)

	transformStart := time.Now()
	passTimes, scoapSum, err := r.applyPassesWithHooks(ctx, n, opts)
	result.Stats.TransformTime = time.Since(transformStart)
	result.Stats.PassTimes = passTimes
	result.ScoapSum = scoapSum
	if err != nil {
		return nil, nil, false, fmt.Errorf("transform: %w", err)
	}

	var buf bytes.Buffer
	if err := netio.EncodeJSON(&buf, netio.FromNet(n, opts.Name)); err != nil {
		return nil, nil, false, fmt.Errorf("serialize netlist: %w", err)
	}
	data := buf.Bytes()

	if !opts.Refresh {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLNet); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKey, len(data))
		}
	}

	return n, data, false, nil
}

// applyPassesWithHooks runs the pass sequence with per-pass observability.
func (r *Runner) applyPassesWithHooks(ctx context.Context, n *boolnet.Net, opts Options) (map[string]time.Duration, uint64, error) {
	times := make(map[string]time.Duration, len(opts.Passes))
	var scoapSum uint64

	for _, pass := range opts.Passes {
		start := time.Now()
		observability.Pipeline().OnPassStart(ctx, pass, n.NumGates())
		sum, err := RunPass(n, pass, opts.Buffers)
		elapsed := time.Since(start)
		observability.Pipeline().OnPassComplete(ctx, pass, n.NumGates(), elapsed, err)
		if err != nil {
			return times, scoapSum, err
		}
		if pass == PassScoap {
			scoapSum = sum
		}
		times[pass] = elapsed

		r.Logger.Debug("applied pass",
			"pass", pass,
			"gates", n.NumGates(),
			"duration", elapsed)
	}

	return times, scoapSum, nil
}

// renderWithCache generates artifacts with per-format caching and reports
// whether every requested format came from cache.
func (r *Runner) renderWithCache(ctx context.Context, n *boolnet.Net, netHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(netHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(n, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(netHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// saveReport persists a run report and returns its ID.
func (r *Runner) saveReport(ctx context.Context, sourceHash string, opts Options, result *Result) (string, error) {
	rep := store.NewReport()
	rep.Source = opts.Source
	rep.SourceHash = sourceHash
	rep.Passes = opts.Passes
	rep.Inputs = result.Net.NumInputs()
	rep.Outputs = result.Net.NumOutputs()
	rep.Gates = result.Stats.GateCount
	rep.Depth = result.Stats.Depth
	rep.AvgFanOut = result.Stats.AvgFanOut
	rep.ScoapSum = result.ScoapSum
	for pass, d := range result.Stats.PassTimes {
		rep.Timings[pass] = d.Milliseconds()
	}
	rep.Netlist = netio.FromNet(result.Net, opts.Name)

	start := time.Now()
	err := r.Store.Save(ctx, rep)
	observability.Store().OnReportSave(ctx, rep.ID, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return rep.ID, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// gateCount tolerates a nil network from a failed load.
func gateCount(n *boolnet.Net) int {
	if n == nil {
		return 0
	}
	return n.NumGates()
}

// innerScoapSum recomputes the summed testability from stored gate scores,
// used when the transformed netlist came from cache.
func innerScoapSum(n *boolnet.Net) uint64 {
	var sum uint64
	for _, id := range n.InnerIDs() {
		g := n.MustGate(id)
		s := g.Scoap()
		if s.CC0 == boolnet.Infinity && s.CC1 == boolnet.Infinity && s.CO == boolnet.Infinity {
			continue
		}
		sum += uint64(s.CC0) + uint64(s.CC1) + uint64(s.CO)
	}
	return sum
}
