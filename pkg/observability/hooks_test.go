package observability

import (
	"context"
	"testing"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopConstructionHooks{}
	c.OnVariableAssigned(ctx, 2, "V1")
	c.OnGateCreated(ctx, 5, "and")
	c.OnCCFSubstitution(ctx, "PUMP-1", "CCF-GROUP-1")

	r := NoopRewriteHooks{}
	r.OnDuplicateArg(ctx, 5, 2)
	r.OnComplementArg(ctx, 5, 2)
	r.OnConstantFold(ctx, 5, true)
	r.OnCoalesce(ctx, 5, 6)
	r.OnNullJoin(ctx, 5, 6)
	r.OnMakeConstant(ctx, 5, false)

	ch := NoopCacheHooks{}
	ch.OnCacheHit(ctx, "model")
	ch.OnCacheMiss(ctx, "model")
	ch.OnCacheSet(ctx, "model", 128)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Construction().(NoopConstructionHooks); !ok {
		t.Error("Construction() should return NoopConstructionHooks by default")
	}
	if _, ok := Rewrite().(NoopRewriteHooks); !ok {
		t.Error("Rewrite() should return NoopRewriteHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customConstruction := &testConstructionHooks{}
	SetConstructionHooks(customConstruction)
	if Construction() != customConstruction {
		t.Error("SetConstructionHooks should set custom hooks")
	}

	customRewrite := &testRewriteHooks{}
	SetRewriteHooks(customRewrite)
	if Rewrite() != customRewrite {
		t.Error("SetRewriteHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Construction().(NoopConstructionHooks); !ok {
		t.Error("Reset() should restore NoopConstructionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testConstructionHooks{}
	SetConstructionHooks(custom)

	SetConstructionHooks(nil)

	if Construction() != custom {
		t.Error("SetConstructionHooks(nil) should be ignored")
	}

	Reset()
}

type testConstructionHooks struct{ NoopConstructionHooks }
type testRewriteHooks struct{ NoopRewriteHooks }
type testCacheHooks struct{ NoopCacheHooks }
