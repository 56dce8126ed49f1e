package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newSitemapCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Write sitemap.xml to stdout or a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := c.openSite(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			data, err := site.Sitemap(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write sitemap: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
