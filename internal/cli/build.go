package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openpra/pdag/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	incorporateCCF bool
	noCache        bool
	refresh        bool
}

// buildCommand creates the "build" command, which constructs a PDAG
// from a fault-tree model and reports its raw (un-preprocessed) size.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{incorporateCCF: true}

	cmd := &cobra.Command{
		Use:   "build <model-file>",
		Short: "Build a PDAG from a fault-tree model",
		Long: `Build constructs a PDAG from a symbolic fault-tree model and reports
its variable and gate counts before any preprocessing.

Use "-" to read the model from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.incorporateCCF, "ccf", opts.incorporateCCF, "substitute common-cause-failure groups during construction")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the construction-outcome cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass a cached construction outcome and rebuild")

	return cmd
}

// runBuild loads the model, builds the graph through the cache-aware
// runner, and prints the resulting variable/gate counts.
func (c *CLI) runBuild(cmd *cobra.Command, path string, opts *buildOpts) error {
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

	prog := newProgress(logger)
	g, cacheInfo, err := runner.BuildWithCacheInfo(cmd.Context(), pipeline.Options{
		Source:         src,
		IncorporateCCF: opts.incorporateCCF,
		Refresh:        opts.refresh,
		Logger:         logger,
	})
	if err != nil {
		if cacheInfo.BuildFailedFast {
			printError("Build failed (cached): %v", err)
		} else {
			printError("Build failed: %v", err)
		}
		return err
	}
	prog.done(fmt.Sprintf("Built %d variables, %d gates", g.VariableCount(), len(g.Gates())))

	printStats(g.VariableCount(), len(g.Gates()), cacheInfo.BuildHit)
	return nil
}
