package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openpra/pdag/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output         string
	formatsStr     string
	incorporateCCF bool
	detailed       bool
	scale          float64
	noCache        bool
	skipPreprocess bool
}

// renderCommand creates the "render" command, which draws a PDAG as a
// Graphviz fault-tree diagram.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{incorporateCCF: true, scale: pipeline.DefaultRenderScale}

	cmd := &cobra.Command{
		Use:   "render <model-file>",
		Short: "Render a PDAG as a fault-tree diagram",
		Long: `Render builds a PDAG from a fault-tree model, preprocesses it to its
local-rewrite fixed point, and draws the result as a Graphviz fault-tree
diagram in one or more formats (dot, svg, png, pdf).

Use "-" to read the model from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): dot (default), svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.incorporateCCF, "ccf", opts.incorporateCCF, "substitute common-cause-failure groups during construction")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate each gate with its argument list")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG render scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the construction-outcome cache")
	cmd.Flags().BoolVar(&opts.skipPreprocess, "no-preprocess", false, "render the graph as built, without reducing to its fixed point")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	src, err := readSource(path)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}

	formats := parseRenderFormats(opts.formatsStr)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	g, _, err := runner.BuildWithCacheInfo(cmd.Context(), pipeline.Options{
		Source:         src,
		IncorporateCCF: opts.incorporateCCF,
		Logger:         logger,
	})
	if err != nil {
		printError("Build failed: %v", err)
		return err
	}
	if !opts.skipPreprocess {
		pipeline.Preprocess(cmd.Context(), g)
	}

	artifacts, err := pipeline.Render(g, pipeline.Options{
		Formats:  formats,
		Detailed: opts.detailed,
		Scale:    opts.scale,
	})
	if err != nil {
		return err
	}

	base := renderBasePath(opts.output, path)
	for _, format := range formats {
		data := artifacts[format]
		out := opts.output
		if out == "" || len(formats) > 1 {
			out = fmt.Sprintf("%s.%s", base, format)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	return nil
}

// parseRenderFormats parses the --format flag into a slice, defaulting
// to ["dot"] when empty.
func parseRenderFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatDOT}
	}
	return strings.Split(s, ",")
}

// renderBasePath derives the base output path from the output and
// input file paths, stripping a trailing format extension if present.
func renderBasePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if base == "" || base == "-" {
			return "model"
		}
		return base
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}
