package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) sitesCmd() *cobra.Command {
	var hideHTTPS bool

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the sites that can be combined into a certificate",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&hideHTTPS, "hide-https", false, "mark sites that only have https bindings as hidden")

	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		sites, err := a.catalog.ListSites(cmd.Context(), hideHTTPS, false)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tHOST\tNAMES\tHIDDEN")
		for _, s := range sites {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", s.SiteID, s.Host, s.AlternativeNames, s.Hidden)
		}
		return w.Flush()
	})
	return cmd
}
