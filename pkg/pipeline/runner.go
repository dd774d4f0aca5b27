package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/openpra/pdag/pkg/cache"
	"github.com/openpra/pdag/pkg/observability"
	"github.com/openpra/pdag/pkg/pdag"
)

// Runner encapsulates pipeline execution with construction-outcome
// caching. Both CLI and library callers use this to avoid duplicating
// caching and logging logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Logger: logger,
	}
}

// Execute runs the complete build → preprocess → render pipeline with
// construction-outcome caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		ModelHash: cache.Hash([]byte(opts.Source)),
		Artifacts: make(map[string][]byte),
	}

	buildStart := time.Now()
	g, cacheInfo, err := r.BuildWithCacheInfo(ctx, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo = cacheInfo
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g

	r.Logger.Info("built graph",
		"variables", g.VariableCount(),
		"gates", len(g.Gates()),
		"duration", result.Stats.BuildTime)

	preprocessStart := time.Now()
	Preprocess(ctx, g)
	result.Stats.PreprocessTime = time.Since(preprocessStart)

	r.Logger.Info("preprocessed graph",
		"duration", result.Stats.PreprocessTime)

	renderStart := time.Now()
	artifacts, err := Render(g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	result.Stats.VariableCount = g.VariableCount()
	result.Stats.GateCount = len(g.Gates())

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo constructs a graph from opts.Source, consulting
// the construction-outcome cache first. A cached failure short-circuits
// the parse/build attempt and returns its recorded error immediately.
// A cached success is only informational (logged, and checked against
// the freshly-built graph's size): the PDAG itself is never cached, so
// a cache hit never skips the actual build.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*pdag.Graph, CacheInfo, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, CacheInfo{}, err
	}
	r.applyLogger(&opts)

	modelHash := cache.Hash([]byte(opts.Source))
	keyOpts := cache.ModelKeyOpts{IncorporateCCF: opts.IncorporateCCF}
	cacheKey := r.Keyer.ModelKey(modelHash, keyOpts)

	var info CacheInfo
	var cached cache.ConstructionOutcome
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
				info.BuildHit = true
				observability.Cache().OnCacheHit(ctx, "model")
				if !cached.OK {
					info.BuildFailedFast = true
					return nil, info, fmt.Errorf("cached construction failure: %s", cached.ErrorMessage)
				}
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "model")
		}
	}

	g, err := Build(ctx, opts)

	outcome := cache.ConstructionOutcome{OK: err == nil}
	if err != nil {
		outcome.ErrorMessage = err.Error()
	} else {
		outcome.VariableCount = g.VariableCount()
		outcome.GateCount = len(g.Gates())
	}
	if data, marshalErr := json.Marshal(outcome); marshalErr == nil {
		if setErr := r.Cache.Set(ctx, cacheKey, data, cache.TTLConstructionOutcome); setErr == nil {
			observability.Cache().OnCacheSet(ctx, "model", len(data))
		}
	}

	if err != nil {
		return nil, info, err
	}
	if info.BuildHit && cached.OK {
		if cached.VariableCount != g.VariableCount() || cached.GateCount != len(g.Gates()) {
			r.Logger.Warn("construction outcome drifted from cached summary",
				"cached_variables", cached.VariableCount, "variables", g.VariableCount(),
				"cached_gates", cached.GateCount, "gates", len(g.Gates()))
		}
	}

	return g, info, nil
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
