package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitecert/core/health"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the site inventory and the renewal store are reachable",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		checks := []health.Check{{
			Name: "inventory",
			Fn: func(ctx context.Context) error {
				_, err := a.catalog.ListSites(ctx, false, false)
				return err
			},
		}}
		if a.backend != nil {
			checks = append(checks, health.Check{Name: a.cfg.RenewalStore, Fn: a.backend.healthcheck})
		}

		if err := health.Readiness(cmd.Context(), a.log, checks...); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	})
	return cmd
}
