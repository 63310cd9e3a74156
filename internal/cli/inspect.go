package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/pipeline"
	"github.com/matzehuels/connline/pkg/scene"
)

// inspectCommand creates the inspect command for browsing a scene's layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "Browse the connectors of a scene interactively",
		Long: `Browse the connectors of a scene interactively.

Lists every connector with its targets, chosen sides and curve length.
The pane below the list shows the frame, anchors, SVG path and marker
placements of the highlighted connector. Press enter to open it in the
terminal preview.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], &flags)
		},
	}

	flags.bindLayout(cmd)

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string, flags *pipelineFlags) error {
	ctx := cmd.Context()
	s, laid, err := c.layoutScene(ctx, input, flags.options(cmd, c.Config.Pipeline), flags.noCache)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(NewInspectModel(input, laid), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("inspector: %w", err)
	}
	if m, ok := final.(InspectModel); ok && m.Chosen != nil {
		return runPreview(ctx, s, laid, m.Chosen.Connector.ID)
	}
	return nil
}

// layoutScene loads a scene and lays it out through a CLI runner.
func (c *CLI) layoutScene(ctx context.Context, input string, opts pipeline.Options, noCache bool) (*scene.Scene, []scene.Laid, error) {
	s, err := scene.Load(input)
	if err != nil {
		return nil, nil, fmt.Errorf("load scene %s: %w", input, err)
	}

	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	opts.Logger = c.Logger
	remote, err := runner.FetchRegions(ctx, s, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch regions: %w", err)
	}
	laid, err := runner.Layout(ctx, s, remote, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("compute layout: %w", err)
	}
	return s, laid, nil
}
