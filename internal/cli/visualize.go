package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/pipeline"
	"github.com/matzehuels/connline/pkg/render/sink"
	"github.com/matzehuels/connline/pkg/scene"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output    string
		sceneFile string
		flags     pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or a Graphviz overview. The layout contains all
positioning information, so this step is purely about rendering. Pass the
original scene with --scene to outline its regions.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a scene to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config.Pipeline)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], sceneFile, opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&sceneFile, "scene", "", "scene the layout was computed from (for region outlines)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	flags.bindRender(cmd)

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input, sceneFile string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	laid, err := sink.ReadJSON(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	s := &scene.Scene{}
	if sceneFile != "" {
		if s, err = scene.Load(sceneFile); err != nil {
			return fmt.Errorf("load scene %s: %w", sceneFile, err)
		}
	}
	if len(s.Connectors) == 0 {
		for _, l := range laid {
			s.Connectors = append(s.Connectors, l.Connector)
		}
	}

	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, s, laid, opts)
	if err != nil {
		spinner.Fail("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     runStats{connectors: len(laid), cached: cacheHit},
	})
}
