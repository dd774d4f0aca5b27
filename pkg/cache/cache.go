// Package cache provides a small pluggable cache abstraction and the
// single PDAG-domain key this project caches under: a model's
// construction outcome, never the PDAG itself.
//
// The "persistence of the PDAG" non-goal rules out caching any
// serialized graph, layout, or rendered artifact — all three are either
// the PDAG or state a PDAG is trivially reconstructed from. What is
// safe, and what this package narrows the teacher's four-tier
// HTTP/Graph/Layout/Artifact [Keyer] down to, is a tiny, non-reconstructible
// summary of whether a given model source built cleanly and how big the
// result was. A cache hit lets a caller fail fast on a model already
// known to be malformed without literally storing or rebuilding any
// graph state.
package cache

import "context"
import "time"

// Cache is a minimal key-value store with TTL support, implemented by
// [FileCache], [NullCache], and the redis-backed store in
// [github.com/openpra/pdag/pkg/cache/redis].
type Cache interface {
	// Get retrieves a value, returning ok=false on a miss (including an
	// expired entry).
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value. ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ModelKeyOpts are the construction options that affect a model's
// built outcome and therefore must be part of its cache key.
type ModelKeyOpts struct {
	// IncorporateCCF mirrors [pdag.BuildOptions.IncorporateCCF]: a model
	// built with CCF substitution enabled can have a different gate and
	// variable count than the same model built without it.
	IncorporateCCF bool
}

// Keyer derives cache keys for construction outcomes. The PDAG domain
// has exactly one cacheable tier, unlike the teacher's four (HTTP
// response / dependency graph / layout / rendered artifact): a model's
// construction outcome, keyed by the hash of its source text plus the
// build options that could change that outcome.
type Keyer interface {
	ModelKey(modelHash string, opts ModelKeyOpts) string
}

// DefaultKeyer is the default [Keyer] implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key derivation strategy.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ModelKey derives a cache key from a model source hash and the build
// options that influence its construction outcome.
func (DefaultKeyer) ModelKey(modelHash string, opts ModelKeyOpts) string {
	return hashKey("model", modelHash, opts)
}

// ConstructionOutcome is the only PDAG-derived state this project ever
// caches: a summary small and non-reconstructible enough that caching it
// does not violate the "persistence of the PDAG" non-goal. It records
// whether a model built cleanly and, if so, the resulting graph's size —
// never the graph's structure.
type ConstructionOutcome struct {
	OK            bool   `json:"ok"`
	VariableCount int    `json:"variable_count,omitempty"`
	GateCount     int    `json:"gate_count,omitempty"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// TTLConstructionOutcome is the default expiration for a cached
// construction outcome. Construction is a pure function of the model
// source and build options, so entries never go stale in the way an
// HTTP response does; the TTL exists to bound cache growth, not to
// track external freshness.
const TTLConstructionOutcome = 30 * 24 * time.Hour
