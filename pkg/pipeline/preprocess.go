package pipeline

import (
	"context"

	"github.com/openpra/pdag/pkg/observability"
	"github.com/openpra/pdag/pkg/pdag"
)

// Preprocess runs g to its local-rewrite fixed point via
// [pdag.Graph.Preprocess], then reports a coarse summary to
// [observability.RewriteHooks]: the individual duplicate/complement/
// coalesce/null-join events happen deep inside [pdag.Gate]'s edit
// methods, which stay free of any observability dependency, so this
// wrapper can only report which previously-Normal gates ended up
// collapsed to a constant once the sweep has finished.
func Preprocess(ctx context.Context, g *pdag.Graph) {
	var normalBefore []*pdag.Gate
	for _, gt := range g.Gates() {
		if gt.State() == pdag.Normal {
			normalBefore = append(normalBefore, gt)
		}
	}

	g.Preprocess()

	hooks := observability.Rewrite()
	for _, gt := range normalBefore {
		if gt.State() != pdag.Normal {
			hooks.OnMakeConstant(ctx, gt.Index(), gt.State() == pdag.UnityState)
		}
	}
}
