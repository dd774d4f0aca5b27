package pipeline

import (
	"fmt"

	"github.com/openpra/pdag/pkg/pdag"
	pdagprint "github.com/openpra/pdag/pkg/pdag/print"
	pdagrender "github.com/openpra/pdag/pkg/pdag/render"
)

// Render generates output artifacts in the requested formats from an
// already-built, already-preprocessed graph.
func Render(g *pdag.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	renderOpts := pdagrender.Options{Detailed: opts.Detailed}

	var dot string
	dotComputed := false
	ensureDOT := func() string {
		if !dotComputed {
			dot = pdagrender.ToDOT(g, renderOpts)
			dotComputed = true
		}
		return dot
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(pdagprint.Graph(g))
		case FormatDOT:
			data = []byte(ensureDOT())
		case FormatSVG:
			data, err = pdagrender.RenderSVG(ensureDOT())
		case FormatPNG:
			data, err = pdagrender.RenderPNG(ensureDOT(), opts.Scale)
		case FormatPDF:
			data, err = pdagrender.RenderPDF(ensureDOT())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
