// Package pkg provides the core libraries for pdag, a propositional
// directed acyclic graph engine for fault-tree analysis.
//
// # Overview
//
// pdag constructs a PDAG from a symbolic fault-tree model, reduces it to
// its local-rewrite fixed point, and prints or renders the result. The
// pkg directory is organized as:
//
//  1. [pdag] - The graph itself: Constant/Variable/Gate node types,
//     construction from a source adapter, and the worklist-driven
//     local-rewrite preprocessing pass.
//  2. [model] - A symbolic fault-tree text format and parser that
//     implements pdag's source adapter interfaces.
//  3. [pipeline] - Orchestration (build → preprocess → render) shared by
//     the CLI and any future API or worker entry point.
//  4. [cache] - Construction-outcome caching, keyed by model hash and
//     build options.
//  5. [observability] - Hooks fired from pipeline stage boundaries for
//     construction, rewrite, and cache events.
//  6. [config] - TOML-backed CLI/service configuration.
//  7. [pdagerr] - The structured error type shared across the graph,
//     model, and pipeline layers.
//
// # Architecture
//
// The typical data flow through pdag:
//
//	Fault-tree text model
//	         ↓
//	    [model] package (parse into pdag.SourceGate tree)
//	         ↓
//	    [pdag] package (construct the graph, then preprocess)
//	         ↓
//	    [pdag/print] or [pdag/render] package (text dump or diagram)
//
// # Quick Start
//
// Build, preprocess, and print a model:
//
//	import (
//	    "github.com/openpra/pdag/pkg/model"
//	    "github.com/openpra/pdag/pkg/pdag"
//	    pdagprint "github.com/openpra/pdag/pkg/pdag/print"
//	)
//
//	m, _ := model.Parse(src)
//	root, _ := m.Root()
//	g, _ := pdag.Build(root, pdag.BuildOptions{IncorporateCCF: true})
//	g.Preprocess()
//	fmt.Println(pdagprint.Graph(g))
//
// # Main Packages
//
// [pdag] - The PDAG itself. House events enter at construction time as
// edges to the Constant; they are folded, and a gate's [pdag.State]
// shows the resulting collapse, only once [pdag.Graph.Preprocess] runs
// the worklists to their fixed point. A duplicate or complement
// collision collapses a gate as soon as the colliding argument is added.
//
// [pdag/print] - A flat, human-readable equation dump of a graph, one
// line per gate in post-order.
//
// [pdag/render] - Fault-tree diagrams via Graphviz: gates shaped by
// operator, variables as ovals, negated edges dashed.
//
// [model] - A toy s-expression fault-tree format: events, house events,
// CCF groups, and gates (including VOTE(K/N)), each resolving to a
// [pdag.SourceGate]/[pdag.SourceBasicEvent]/[pdag.SourceHouseEvent].
//
// [pipeline] - The build → preprocess → render pipeline. Only the build
// stage is cacheable; preprocessing and rendering always run against
// the in-memory graph a build produced.
//
// [cache] - A single-tier cache of construction outcomes (success or
// failure, with variable/gate counts), not of the graph itself. File,
// Redis, and null-cache backends implement [cache.Cache].
//
// [cache/mongoaudit] - An append-only audit trail of rejected models.
//
// [observability] - Construction, rewrite, and cache hooks, deliberately
// free of any [pdag] import so instrumentation never couples back into
// the graph's internal edit methods.
//
// [config] - TOML configuration of build and render settings (CCF
// incorporation, VOTE reduction strategy, render format and scale).
// The pdagctl commands do not load it.
//
// [render] - Shared SVG-to-PDF/PNG format conversion via rsvg-convert,
// used by [pdag/render].
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/pdag/...                # Specific package
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [pdag]: https://pkg.go.dev/github.com/openpra/pdag/pkg/pdag
// [pdag/print]: https://pkg.go.dev/github.com/openpra/pdag/pkg/pdag/print
// [pdag/render]: https://pkg.go.dev/github.com/openpra/pdag/pkg/pdag/render
// [model]: https://pkg.go.dev/github.com/openpra/pdag/pkg/model
// [pipeline]: https://pkg.go.dev/github.com/openpra/pdag/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/openpra/pdag/pkg/cache
// [cache/mongoaudit]: https://pkg.go.dev/github.com/openpra/pdag/pkg/cache/mongoaudit
// [observability]: https://pkg.go.dev/github.com/openpra/pdag/pkg/observability
// [config]: https://pkg.go.dev/github.com/openpra/pdag/pkg/config
// [pdagerr]: https://pkg.go.dev/github.com/openpra/pdag/pkg/pdagerr
// [render]: https://pkg.go.dev/github.com/openpra/pdag/pkg/render
package pkg
