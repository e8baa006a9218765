package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/server"
)

// storeCloseTimeout bounds disconnecting from the layout store on exit.
const storeCloseTimeout = 5 * time.Second

// serverKeyPrefix separates server cache entries from CLI entries sharing
// the same backend.
const serverKeyPrefix = "api:"

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Layouts are computed with the configured cache ([cache] in lineage.toml:
file, redis or none) and stored in the configured store ([store]: memory or
mongo). Engine defaults come from [layout]; each request may override them.

  POST   /v1/layouts                 compute and store a layout
  GET    /v1/layouts                 list stored layouts
  GET    /v1/layouts/{id}            fetch a stored layout
  DELETE /v1/layouts/{id}            delete a stored layout
  GET    /v1/layouts/{id}/{format}   render a stored layout
  GET    /healthz                    build information

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, serverKeyPrefix)

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "error", err)
		}
	}()

	sc := c.Config.Server
	srv := server.New(server.Config{
		Runner:       runner,
		Store:        st,
		Logger:       c.Logger,
		Defaults:     c.pipelineOptions(),
		MaxBodyBytes: sc.MaxBodyBytes,
		ReadTimeout:  sc.ReadTimeout.Duration,
		WriteTimeout: sc.WriteTimeout.Duration,
	})

	c.Logger.Info("starting server",
		"addr", addr,
		"cache", c.Config.Cache.Backend,
		"store", c.Config.Store.Backend)
	return srv.ListenAndServe(ctx, addr)
}
