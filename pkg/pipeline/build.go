package pipeline

import (
	"context"
	"fmt"

	"github.com/openpra/pdag/pkg/model"
	"github.com/openpra/pdag/pkg/observability"
	"github.com/openpra/pdag/pkg/pdag"
)

// Build parses opts.Source and constructs a PDAG from it.
//
// [pdag.Build] itself stays free of any observability dependency (see
// [observability]'s package doc), so this wrapper reports the
// construction it just performed to [observability.ConstructionHooks]
// after the fact rather than having pdag fire events as it goes. This
// is coarser than per-node instrumentation but keeps the core graph
// library's synchronous edit API free of a context.Context parameter.
func Build(ctx context.Context, opts Options) (*pdag.Graph, error) {
	m, err := model.Parse(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	root, err := m.Root()
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	g, err := pdag.Build(root, pdag.BuildOptions{IncorporateCCF: opts.IncorporateCCF})
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	hooks := observability.Construction()
	for _, v := range g.Variables() {
		sourceKey, _ := g.BasicEvent(v.Index())
		hooks.OnVariableAssigned(ctx, v.Index(), sourceKey)
	}
	for _, gt := range g.Gates() {
		hooks.OnGateCreated(ctx, gt.Index(), gt.Operator.String())
	}

	return g, nil
}
