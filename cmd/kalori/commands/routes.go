package commands

import (
	"fmt"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newRoutesCmd() *cobra.Command {
	var resolve bool

	cmd := &cobra.Command{
		Use:   "routes PATH...",
		Short: "Show which page shape each path resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := c.openSite(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = site.Close() }()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, raw := range args {
				u, err := url.Parse(raw)
				if err != nil {
					return fmt.Errorf("parse %q: %w", raw, err)
				}
				if !resolve {
					fmt.Fprintf(w, "%s\t%s\n", raw, site.Match(u.Path).Shape)
					continue
				}
				resp := site.Dispatch(cmd.Context(), u.Path, u.Query())
				fmt.Fprintf(w, "%s\t%s\t%d\n", raw, resp.Shape, resp.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&resolve, "resolve", "r", false, "Resolve data and report the final shape and status")
	return cmd
}
