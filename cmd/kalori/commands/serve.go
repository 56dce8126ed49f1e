package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/config"
)

const shutdownTimeout = 10 * time.Second

func (c *CLI) newServeCmd() *cobra.Command {
	var (
		addr string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []config.Option
			if addr != "" {
				extra = append(extra, config.WithAddr(addr))
			}
			if cmd.Flags().Changed("dev") {
				extra = append(extra, config.WithDev(dev))
			}

			ctx := cmd.Context()
			site, err := c.openSite(ctx, extra...)
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			cfg := site.Config()
			server := &http.Server{
				Addr:              cfg.Addr,
				Handler:           site.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				cfg.Logger.Info("Listening", zap.String("addr", cfg.Addr), zap.Bool("dev", cfg.Dev), zap.String("baseURL", cfg.BaseURL))
				serverErr <- server.ListenAndServe()
			}()

			select {
			case err := <-serverErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server: %w", err)
				}
				return nil
			case <-ctx.Done():
				cfg.Logger.Info("Shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode: browsers get the client shell")
	return cmd
}
