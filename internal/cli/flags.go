package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/pipeline"
)

// pipelineFlags are the layout and render flags shared by several commands.
// Only flags the user set override the config file.
type pipelineFlags struct {
	formats     string
	style       string
	scale       float64
	margin      float64
	showRegions bool
	detailed    bool
	straight    bool
	refresh     bool
	attempts    int
	noCache     bool
}

func (f *pipelineFlags) bindLayout(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.straight, "straight", false, "draw every connector as a straight segment")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached regions and layouts")
	cmd.Flags().IntVar(&f.attempts, "region-attempts", pipeline.DefaultRegionAttempts, "attempts for transient region store failures")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

func (f *pipelineFlags) bindRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, overview (comma-separated)")
	cmd.Flags().StringVar(&f.style, "style", pipeline.DefaultStyle, "line style: plain (default), dashed")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "pixels per unit for PNG output")
	cmd.Flags().Float64Var(&f.margin, "margin", pipeline.DefaultMargin, "margin around the drawing")
	cmd.Flags().BoolVar(&f.showRegions, "regions", false, "outline scene regions")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label overview edges with the chosen sides")
}

// options merges the changed flags over base.
func (f *pipelineFlags) options(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	opts := base
	opts.Formats = append([]string(nil), base.Formats...)
	changed := cmd.Flags().Changed

	if changed("straight") {
		opts.Straight = f.straight
	}
	if changed("refresh") {
		opts.Refresh = f.refresh
	}
	if changed("region-attempts") {
		opts.RegionAttempts = f.attempts
	}
	if changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if changed("style") {
		opts.Style = f.style
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("margin") {
		m := f.margin
		opts.Margin = &m
	}
	if changed("regions") {
		opts.ShowRegions = f.showRegions
	}
	if changed("detailed") {
		opts.Detailed = f.detailed
	}
	return opts
}
