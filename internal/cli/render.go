package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/pipeline"
	"github.com/matzehuels/connline/pkg/scene"
)

// renderCommand creates the render command: layout and visualize in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Lay out and render a scene",
		Long: `Lay out and render a scene in one step.

Equivalent to 'layout' followed by 'visualize'. Several formats can be
requested at once:

  connline render flow.toml -f svg,png,overview

Outputs are written next to the input (flow.svg, flow.png,
flow.overview.svg) unless -o names a file (single format) or a base path.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config.Pipeline)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.bindLayout(cmd)
	flags.bindRender(cmd)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	s, err := scene.Load(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	logger.Debugf("Loaded scene: %d regions, %d connectors", len(s.Regions), len(s.Connectors))

	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, s, opts)
	if err != nil {
		spinner.Fail("Render failed")
		return err
	}
	spinner.Stop()

	if n := result.Stats.RegionsWanted - result.Stats.RegionsFound; n > 0 {
		printWarning("%d region(s) not found; their connectors fall back to the zero rectangle", n)
	}

	stats := runStats{
		connectors:    result.Stats.Connectors,
		regionsWanted: result.Stats.RegionsWanted,
		regionsFound:  result.Stats.RegionsFound,
		elapsed:       result.Stats.RegionsTime + result.Stats.LayoutTime + result.Stats.RenderTime,
		cached:        result.CacheInfo.RenderHit,
	}
	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     stats,
	})
}
