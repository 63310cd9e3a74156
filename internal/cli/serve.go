package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/connline/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		sceneDir string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Routes:
  POST /v1/layout   lay out one connector
  POST /v1/scene    lay out and render a scene (?format=svg|png|pdf|json|dot|overview)
  GET  /v1/scenes/* render a scene file below --scenes (same query options)
  GET  /healthz     liveness probe
  GET  /version     build information

The server uses the configured cache and region store and stops cleanly on
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("scenes") && c.Config.Server.SceneDir != "" {
				sceneDir = c.Config.Server.SceneDir
			}
			return c.runServe(cmd.Context(), addr, sceneDir, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&sceneDir, "scenes", "", "directory of scene files to serve")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, sceneDir string, noCache bool) error {
	runner, closeRunner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	srv := server.New(server.Config{
		Runner:   runner,
		Logger:   c.Logger,
		MaxBody:  c.Config.Server.MaxBody,
		Timeout:  c.Config.Server.Timeout,
		SceneDir: sceneDir,
	})
	return srv.ListenAndServe(ctx, addr)
}
