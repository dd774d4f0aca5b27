package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openpra/pdag/pkg/pipeline"
)

// printOpts holds the command-line flags for the print command.
type printOpts struct {
	incorporateCCF bool
	noCache        bool
	skipPreprocess bool
}

// printCommand creates the "print" command, which renders a PDAG as a
// flat list of human-readable gate equations.
func (c *CLI) printCommand() *cobra.Command {
	opts := printOpts{incorporateCCF: true}

	cmd := &cobra.Command{
		Use:   "print <model-file>",
		Short: "Print a PDAG as a flat list of gate equations",
		Long: `Print builds a PDAG from a fault-tree model, preprocesses it to its
local-rewrite fixed point, and prints one equation per gate in
post-order.

Use "-" to read the model from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.incorporateCCF, "ccf", opts.incorporateCCF, "substitute common-cause-failure groups during construction")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the construction-outcome cache")
	cmd.Flags().BoolVar(&opts.skipPreprocess, "no-preprocess", false, "print the graph as built, without reducing to its fixed point")

	return cmd
}

func (c *CLI) runPrint(cmd *cobra.Command, path string, opts *printOpts) error {
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

	out, err := pipeline.Render(g, pipeline.Options{Formats: []string{pipeline.FormatText}})
	if err != nil {
		return err
	}
	fmt.Print(string(out[pipeline.FormatText]))
	return nil
}
