package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/api"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog HTTP API",
		Long: `Serve exposes the catalog as a JSON API under /api until interrupted.

Example:
  catalog serve
  catalog serve --addr 127.0.0.1:9000 --log-level info`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.config.GetString(cfgKeyListenAddr)
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gin.SetMode(gin.ReleaseMode)
			srv := api.NewServer(addr, backend, a.logger)
			if err := srv.Run(ctx); err != nil {
				return sysError(fmt.Errorf("serve: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config listen_addr)")
	return cmd
}
