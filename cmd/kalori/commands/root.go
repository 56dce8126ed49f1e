// Package commands implements the kalori CLI.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"goflare.io/kalori"
	"goflare.io/kalori/internal/config"
)

// CLI represents the command line interface for kalori.
type CLI struct {
	rootCmd    *cobra.Command
	configPath string
	opts       []config.Option
}

// New creates the CLI. opts are applied after the config file and environment.
func New(opts ...config.Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kalori",
		Short:         "Server-rendered food nutrition and calculator site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{rootCmd: rootCmd, opts: opts}
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Config file (yaml, json or toml)")

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newSitemapCmd())
	rootCmd.AddCommand(c.newRoutesCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) loadConfig(extra ...config.Option) (*config.Config, error) {
	cfg, err := config.Load(c.configPath, append(extra, c.opts...)...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *CLI) openSite(ctx context.Context, extra ...config.Option) (*kalori.Site, error) {
	cfg, err := c.loadConfig(extra...)
	if err != nil {
		return nil, err
	}
	return kalori.NewFromConfig(ctx, cfg)
}
