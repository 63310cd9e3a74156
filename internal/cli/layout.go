package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/pipeline"
	"github.com/matzehuels/connline/pkg/render/sink"
	"github.com/matzehuels/connline/pkg/scene"
)

// layoutCommand creates the layout command for computing scene layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Compute the layout of a scene",
		Long: `Compute the layout of a scene.

The layout command reads a scene file (.toml, .hcl or .json), resolves every
connector's targets, chooses the sides to attach to and builds the curves and
marker placements. The output is a layout.json file (same format as
'render -f json') that can be rendered using the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config.Pipeline)
			return c.runLayout(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	flags.bindLayout(cmd)

	return cmd
}

// runLayout loads the scene, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	s, err := scene.Load(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	opts.Logger = c.Logger
	prog := newProgress(loggerFromContext(ctx))

	start := time.Now()
	spinner := newSpinner(ctx, "Resolving regions...")
	spinner.Start()

	remote, err := runner.FetchRegions(ctx, s, opts)
	if err != nil {
		spinner.Fail("Region lookup failed")
		return fmt.Errorf("fetch regions: %w", err)
	}
	spinner.Stage("Computing layout...")
	laid, cacheHit, err := runner.LayoutWithCacheInfo(ctx, s, remote, opts)
	if err != nil {
		spinner.Fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d connectors", len(laid)))

	data, err := sink.RenderJSON(laid)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}
	if outputPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printConnectors(laid)
	printFile(outputPath)
	printStats(runStats{
		connectors:    len(laid),
		regionsWanted: len(s.Refs()),
		regionsFound:  len(remote),
		elapsed:       time.Since(start),
		cached:        cacheHit,
	})
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
