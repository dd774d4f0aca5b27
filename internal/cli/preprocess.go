package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openpra/pdag/pkg/pdag"
	"github.com/openpra/pdag/pkg/pipeline"
)

// preprocessOpts holds the command-line flags for the preprocess command.
type preprocessOpts struct {
	incorporateCCF bool
	noCache        bool
}

// preprocessCommand creates the "preprocess" command, which builds a
// PDAG and runs it to its local-rewrite fixed point, reporting how much
// the graph shrank.
func (c *CLI) preprocessCommand() *cobra.Command {
	opts := preprocessOpts{incorporateCCF: true}

	cmd := &cobra.Command{
		Use:   "preprocess <model-file>",
		Short: "Build a PDAG and reduce it to its local-rewrite fixed point",
		Long: `Preprocess builds a PDAG from a fault-tree model, then repeatedly
applies duplicate/complement-argument folding, constant splicing, and
null-gate joining until no further local rewrite applies.

Use "-" to read the model from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreprocess(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.incorporateCCF, "ccf", opts.incorporateCCF, "substitute common-cause-failure groups during construction")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the construction-outcome cache")

	return cmd
}

func (c *CLI) runPreprocess(cmd *cobra.Command, path string, opts *preprocessOpts) error {
	logger := loggerFromContext(cmd.Context())

	src, err := readSource(path)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		Source:         src,
		IncorporateCCF: opts.incorporateCCF,
		Logger:         logger,
	}

	g, _, err := runner.BuildWithCacheInfo(cmd.Context(), pOpts)
	if err != nil {
		printError("Build failed: %v", err)
		return err
	}
	before := len(g.Gates())

	prog := newProgress(logger)
	pipeline.Preprocess(cmd.Context(), g)
	prog.done("Preprocessed")

	after := len(g.Gates())
	collapsed := 0
	for _, gt := range g.Gates() {
		if gt.State() != pdag.Normal {
			collapsed++
		}
	}

	printStats(g.VariableCount(), after, false)
	printDetail("Gates: %d -> %d reachable (%d collapsed to a constant)", before, after, collapsed)

	if root := g.Root(); root != nil && root.State() != pdag.Normal {
		printInfo("Root collapsed to %s", root.State())
	}
	return nil
}
