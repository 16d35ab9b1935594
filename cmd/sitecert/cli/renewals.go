package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitecert/core/logger"
)

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled renewals",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		renewals, err := a.renewals.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSITES\tNAMES\tVALIDATION\tSTORE\tCREATED")
		for _, r := range renewals {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				r.ID,
				r.Target.SourceSites(),
				len(r.Target.Hosts(false)),
				orNone(r.Target.Validation.PluginName),
				orNone(r.StorePlugin),
				r.CreatedAt.Format(time.RFC3339),
			)
		}
		return w.Flush()
	})
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Cancel a scheduled renewal",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("%w: renewal id %q", ErrInvalidOption, args[0])
		}
		if err := a.renewals.Delete(cmd.Context(), id); err != nil {
			return err
		}
		a.log.InfoContext(cmd.Context(), "renewal deleted", logger.RenewalID(id.String()))
		return nil
	})
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
