// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can
// register hooks at startup to receive events about graph construction,
// in-place rewriting, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetConstructionHooks(&myConstructionHooks{})
//	    observability.SetRewriteHooks(&myRewriteHooks{})
//	    // ... run application
//	}
//
// Callers report events through the accessors (in this module, the
// pkg/pipeline stage wrappers do so once a stage has finished):
//
//	observability.Construction().OnGateCreated(ctx, index, op)
//	// ... wire its arguments ...
//	observability.Rewrite().OnDuplicateArg(ctx, gateIndex, argIndex)
package observability

import (
	"context"
	"sync"
)

// =============================================================================
// Construction Hooks
// =============================================================================

// ConstructionHooks receives construction events. [pdag.Build] itself
// reports none; pipeline.Build reports them after Build has returned,
// from the finished graph.
type ConstructionHooks interface {
	// OnVariableAssigned reports a Variable of the built graph and the
	// source basic event bound to it via [pdag.Graph.BindBasicEvent].
	OnVariableAssigned(ctx context.Context, index int, sourceKey any)

	// OnGateCreated reports a gate reachable from the built graph's
	// root. op is the operator's textual spelling (e.g. "and",
	// "atleast"), not the [pdag.Operator] type itself: this package
	// stays dependency-free from pdag and never imports it.
	OnGateCreated(ctx context.Context, index int, op string)

	// OnCCFSubstitution describes a CCF-group basic event replaced by
	// its CCF substitute formula instead of a plain variable (spec §4.3
	// step 1). No caller in this module reports it.
	OnCCFSubstitution(ctx context.Context, sourceKey any, substituteKey any)
}

// =============================================================================
// Rewrite Hooks
// =============================================================================

// RewriteHooks receives events about the gate-editing operations in
// [pdag.Gate] and the preprocessing worklists in [pdag.Graph]. Those
// operations report nothing themselves. In this module only
// OnMakeConstant is reported, by pipeline.Preprocess, once for each
// gate it finds collapsed after [pdag.Graph.Preprocess] has returned;
// no caller reports the other events.
type RewriteHooks interface {
	// OnDuplicateArg fires when AddArg collapses a repeated positive
	// edge to the same node (spec §4.2.2).
	OnDuplicateArg(ctx context.Context, gateIndex, argIndex int)

	// OnComplementArg fires when AddArg resolves a literal and its
	// negation on the same gate (spec §4.2.3).
	OnComplementArg(ctx context.Context, gateIndex, argIndex int)

	// OnConstantFold fires when [pdag.Gate.ProcessConstantArg] folds a
	// literal Constant edge into the gate (spec §4.2.6).
	OnConstantFold(ctx context.Context, gateIndex int, value bool)

	// OnCoalesce fires when [pdag.Gate.CoalesceGate] absorbs a child
	// gate's arguments into its parent (spec §4.2.7).
	OnCoalesce(ctx context.Context, parentIndex, childIndex int)

	// OnNullJoin fires when [pdag.Gate.JoinNullGate] splices a NULL
	// pass-through gate out of the graph (spec §4.2.7).
	OnNullJoin(ctx context.Context, parentIndex, nullGateIndex int)

	// OnMakeConstant fires when a gate collapses to a Boolean constant,
	// whether via [pdag.Gate.MakeConstant] directly or as the terminal
	// state of another reduction (spec §4.2.9).
	OnMakeConstant(ctx context.Context, gateIndex int, value bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from construction-outcome cache operations
// (see [github.com/openpra/pdag/pkg/cache]). keyType is always "model"
// in the current single-tier cache, but the parameter is kept so a
// future cache tier does not require an interface-breaking change.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConstructionHooks is a no-op implementation of ConstructionHooks.
type NoopConstructionHooks struct{}

func (NoopConstructionHooks) OnVariableAssigned(context.Context, int, any) {}
func (NoopConstructionHooks) OnGateCreated(context.Context, int, string)   {}
func (NoopConstructionHooks) OnCCFSubstitution(context.Context, any, any)  {}

// NoopRewriteHooks is a no-op implementation of RewriteHooks.
type NoopRewriteHooks struct{}

func (NoopRewriteHooks) OnDuplicateArg(context.Context, int, int)  {}
func (NoopRewriteHooks) OnComplementArg(context.Context, int, int) {}
func (NoopRewriteHooks) OnConstantFold(context.Context, int, bool) {}
func (NoopRewriteHooks) OnCoalesce(context.Context, int, int)      {}
func (NoopRewriteHooks) OnNullJoin(context.Context, int, int)      {}
func (NoopRewriteHooks) OnMakeConstant(context.Context, int, bool) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)     {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)    {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	constructionHooks ConstructionHooks = NoopConstructionHooks{}
	rewriteHooks      RewriteHooks      = NoopRewriteHooks{}
	cacheHooks        CacheHooks        = NoopCacheHooks{}
	hooksMu           sync.RWMutex
)

// SetConstructionHooks registers custom construction hooks.
// This should be called once at application startup before any
// [pdag.Build] calls.
func SetConstructionHooks(h ConstructionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		constructionHooks = h
	}
}

// SetRewriteHooks registers custom rewrite hooks.
// This should be called once at application startup before any gate
// editing or preprocessing operations.
func SetRewriteHooks(h RewriteHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rewriteHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache
// operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Construction returns the registered construction hooks.
func Construction() ConstructionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return constructionHooks
}

// Rewrite returns the registered rewrite hooks.
func Rewrite() RewriteHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rewriteHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	constructionHooks = NoopConstructionHooks{}
	rewriteHooks = NoopRewriteHooks{}
	cacheHooks = NoopCacheHooks{}
}
