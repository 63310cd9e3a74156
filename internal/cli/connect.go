package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/connector"
	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/geom"
	"github.com/matzehuels/connline/pkg/scene"
	"github.com/matzehuels/connline/pkg/target"
)

// connectOpts holds the flags of the connect command.
type connectOpts struct {
	padding       float64
	fromDirection string
	toDirection   string
	straight      bool
	origin        string
	regions       []string
	startGlyph    string
	endGlyph      string
	midGlyph      string
	fontSize      float64
	noCache       bool
}

// connectResult is the JSON printed by connect.
type connectResult struct {
	Layout  connector.Result  `json:"layout"`
	Markers connector.Markers `json:"markers"`
	Path    string            `json:"path"`
}

// connectCommand creates the connect command for laying out one connector.
func (c *CLI) connectCommand() *cobra.Command {
	opts := connectOpts{padding: connector.DefaultPadding, endGlyph: scene.DefaultEndGlyph}

	cmd := &cobra.Command{
		Use:   "connect FROM TO",
		Short: "Lay out a single connector and print its geometry",
		Long: `Lay out a single connector and print its geometry as JSON.

FROM and TO are targets: "x,y" points, region names, or JSON such as
'[left, top, width, height]' or '{"x": 1, "y": 2}'. Regions are defined
with --region NAME=LEFT,TOP,WIDTH,HEIGHT in absolute coordinates; names
that are not defined are looked up in the configured region store.

Example:
  connline connect '#a' '#b' --region '#a=0,0,40,20' --region '#b=200,80,40,20'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConnect(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "frame padding and control point distance")
	cmd.Flags().StringVar(&opts.fromDirection, "from-direction", "auto", "side to leave from: auto, top, right, bottom, left")
	cmd.Flags().StringVar(&opts.toDirection, "to-direction", "auto", "side to arrive at: auto, top, right, bottom, left")
	cmd.Flags().BoolVar(&opts.straight, "straight", false, "draw a straight segment")
	cmd.Flags().StringVar(&opts.origin, "origin", "0,0", "absolute position of the coordinate frame")
	cmd.Flags().StringArrayVar(&opts.regions, "region", nil, "region NAME=LEFT,TOP,WIDTH,HEIGHT (repeatable)")
	cmd.Flags().StringVar(&opts.startGlyph, "start-glyph", "", "start marker text")
	cmd.Flags().StringVar(&opts.endGlyph, "end-glyph", opts.endGlyph, "end marker text")
	cmd.Flags().StringVar(&opts.midGlyph, "mid-glyph", "", "middle marker text")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "marker font size (default 16)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching of fetched regions")

	return cmd
}

func (c *CLI) runConnect(ctx context.Context, fromArg, toArg string, opts connectOpts) error {
	s, err := connectScene(fromArg, toArg, opts)
	if err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer closeRunner()

	pipeOpts := c.Config.Pipeline
	pipeOpts.Logger = c.Logger
	remote, err := runner.FetchRegions(ctx, s, pipeOpts)
	if err != nil {
		return err
	}
	laid, err := s.Layout(s.Engine(remote))
	if err != nil {
		return err
	}

	l := laid[0]
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(connectResult{Layout: l.Result, Markers: l.Markers, Path: l.Result.Path()})
}

// connectScene builds a one-connector scene from the command arguments.
func connectScene(fromArg, toArg string, opts connectOpts) (*scene.Scene, error) {
	from, err := parseTargetArg(fromArg)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := parseTargetArg(toArg)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	origin, err := parsePoint(opts.origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}

	s := &scene.Scene{Origin: origin}
	for _, r := range opts.regions {
		region, err := parseRegionFlag(r)
		if err != nil {
			return nil, err
		}
		s.Regions = append(s.Regions, region)
	}

	conn := scene.NewConnector("connect")
	conn.From, conn.To = from, to
	conn.Options = connector.OptionsFromMap(map[string]any{
		"padding":        opts.padding,
		"from_direction": opts.fromDirection,
		"to_direction":   opts.toDirection,
		"straight":       opts.straight,
	})
	conn.Glyphs = scene.Glyphs{Start: opts.startGlyph, End: opts.endGlyph, Mid: opts.midGlyph}
	if opts.fontSize > 0 {
		conn.Style.FontSize = opts.fontSize
	}
	s.Connectors = []scene.Connector{conn}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseTargetArg accepts the string forms of a target plus JSON arrays and
// objects.
func parseTargetArg(arg string) (target.Spec, error) {
	trimmed := strings.TrimSpace(arg)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var spec target.Spec
		if err := json.Unmarshal([]byte(trimmed), &spec); err != nil {
			return target.Spec{}, err
		}
		return spec, nil
	}
	return target.Parse(arg), nil
}

// parseRegionFlag parses NAME=LEFT,TOP,WIDTH,HEIGHT.
func parseRegionFlag(v string) (scene.Region, error) {
	name, rect, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return scene.Region{}, errors.New(errors.ErrCodeInvalidInput, "region %q: want NAME=LEFT,TOP,WIDTH,HEIGHT", v)
	}
	nums, err := parseNumbers(rect, 4)
	if err != nil {
		return scene.Region{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "region %q", name)
	}
	return scene.Region{
		Name: strings.TrimSpace(name),
		Rect: geom.Rect{Left: nums[0], Top: nums[1], Width: nums[2], Height: nums[3]},
	}, nil
}

func parsePoint(v string) (geom.Point, error) {
	nums, err := parseNumbers(v, 2)
	if err != nil {
		return geom.Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %q", v)
	}
	return geom.Pt(nums[0], nums[1]), nil
}

func parseNumbers(v string, n int) ([]float64, error) {
	parts := strings.Split(v, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
