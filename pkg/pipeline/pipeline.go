// Package pipeline provides the core construction pipeline for the
// PDAG engine.
//
// This package implements the complete build → preprocess → render
// pipeline that CLI and library callers share, so both paths get
// consistent caching, logging, and option defaulting.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: parse a symbolic fault-tree model and construct a PDAG.
//  2. Preprocess: run the graph to its local-rewrite fixed point.
//  3. Render: emit a textual equation dump or a fault-tree diagram.
//
// Each stage can be run independently or as part of the complete
// pipeline. Unlike the teacher's parse → layout → render pipeline,
// only the first stage is cacheable: the "persistence of the PDAG"
// non-goal rules out storing the graph itself, so Preprocess and
// Render always run against the in-memory graph Build produced.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  modelText,
//	    Formats: []string{"dot"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dot := result.Artifacts["dot"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/openpra/pdag/pkg/pdag"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and library callers
// =============================================================================

const (
	// DefaultRenderScale is the default PNG render scale factor.
	DefaultRenderScale = 2.0
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the construction pipeline.
type Options struct {
	// Build options.
	Source         string `json:"source"`
	IncorporateCCF bool   `json:"incorporate_ccf,omitempty"`
	Refresh        bool   `json:"refresh,omitempty"`

	// Render options.
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the constructed, preprocessed PDAG.
	Graph *pdag.Graph

	// ModelHash is the content hash of the source model text.
	ModelHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages consulted the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VariableCount  int
	GateCount      int
	BuildTime      time.Duration
	PreprocessTime time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache consultation for the build stage. Preprocess
// and Render have no cache tier: only a model's construction outcome
// is ever cached (see [github.com/openpra/pdag/pkg/cache]).
type CacheInfo struct {
	// BuildHit is true when a cached construction outcome for this
	// model hash and build options existed before this run.
	BuildHit bool

	// BuildFailedFast is true when the cached outcome for this model
	// already recorded a validation failure, short-circuiting a repeat
	// parse/build attempt.
	BuildFailedFast bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: text, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults
// for the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for the build stage.
func (o *Options) ValidateForBuild() error {
	if o.Source == "" {
		return fmt.Errorf("source is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Scale == 0 {
		o.Scale = DefaultRenderScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}
