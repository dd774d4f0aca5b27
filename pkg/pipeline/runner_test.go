package pipeline

import (
	"context"
	"testing"

	"github.com/openpra/pdag/pkg/cache"
)

const twoTrainModel = `
	(event V1 0.5)
	(event P1 0.7)
	(event V2 0.5)
	(event P2 0.7)
	(gate OR1 (or V1 P1))
	(gate OR2 (or V2 P2))
	(gate ROOT (and OR1 OR2))
	(root ROOT)
`

func TestRunnerExecuteBuildsAndRendersText(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Source: twoTrainModel})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Stats.VariableCount != 4 {
		t.Errorf("VariableCount = %d, want 4", result.Stats.VariableCount)
	}
	if _, ok := result.Artifacts[FormatText]; !ok {
		t.Errorf("expected a text artifact, got %v", result.Artifacts)
	}
	if result.CacheInfo.BuildHit {
		t.Error("first run should not be a cache hit")
	}
}

func TestRunnerExecuteCachesConstructionOutcome(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{Source: twoTrainModel}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}

	opts2 := Options{Source: twoTrainModel}
	result, err := r.Execute(context.Background(), opts2)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if !result.CacheInfo.BuildHit {
		t.Error("second run with an identical model should hit the construction-outcome cache")
	}
	if result.Stats.VariableCount != 4 {
		t.Errorf("VariableCount = %d, want 4 even on a cache hit (the graph is never cached)", result.Stats.VariableCount)
	}
}

func TestRunnerExecuteFailsFastOnCachedFailure(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	badOpts := Options{Source: "(gate ROOT (and V1 V2))\n(root ROOT)"}
	if _, err := r.Execute(context.Background(), badOpts); err == nil {
		t.Fatalf("expected the first run to fail on undefined references")
	}

	badOpts2 := Options{Source: badOpts.Source}
	_, err = r.Execute(context.Background(), badOpts2)
	if err == nil {
		t.Fatalf("expected the second run to fail fast from the cached outcome")
	}
}

func TestRunnerBuildWithCacheInfoRejectsEmptySource(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, _, err := r.BuildWithCacheInfo(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected an error for an empty source")
	}
}
