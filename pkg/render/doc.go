// Package render provides shared SVG format conversion for diagram
// renderers.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert an SVG document to other formats using the
// external rsvg-convert tool (from librsvg). [pkg/pdag/render] uses both
// to derive PDF and PNG fault-tree diagrams from the SVG it emits via
// Graphviz.
//
//	dot := pdagrender.ToDOT(g, pdagrender.Options{})
//	svg, err := pdagrender.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [pkg/pdag/render]: https://pkg.go.dev/github.com/openpra/pdag/pkg/pdag/render
package render
