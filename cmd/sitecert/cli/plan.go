package cli

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/renewal"
	"github.com/dmitrymomot/sitecert/core/target"
	"github.com/dmitrymomot/sitecert/plugins/store"
	"github.com/dmitrymomot/sitecert/plugins/validation"
)

type planOutput struct {
	Renewal   string       `json:"renewal"`
	Sites     string       `json:"sites"`
	Cancelled bool         `json:"cancelled,omitempty"`
	Targets   []planTarget `json:"targets"`
}

type planTarget struct {
	SiteID          target.SiteID `json:"site_id"`
	Host            string        `json:"host"`
	Names           []string      `json:"names"`
	Validation      string        `json:"validation,omitempty"`
	ValidationError string        `json:"validation_error,omitempty"`
	Cached          *bool         `json:"cached,omitempty"`
}

func (a *app) planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the per-site targets each scheduled renewal currently covers",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		planner := renewal.NewPlanner(a.targets, a.renewals,
			renewal.WithLogger(a.log),
			renewal.WithPruneCancelled(a.cfg.PruneCancelled),
		)
		plans, err := planner.Plan(ctx)
		if err != nil {
			return err
		}

		out := make([]planOutput, 0, len(plans))
		for _, p := range plans {
			po := planOutput{
				Renewal:   p.Renewal.ID.String(),
				Sites:     p.Renewal.Target.SourceSites().String(),
				Cancelled: p.Cancelled,
				Targets:   make([]planTarget, 0, len(p.Targets)),
			}
			certs := a.openCertificateStore(ctx, p.Renewal)
			for _, t := range p.Targets {
				po.Targets = append(po.Targets, a.describeTarget(ctx, t, certs))
			}
			out = append(out, po)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	})
	return cmd
}

// openCertificateStore returns nil when the renewal has no usable store.
func (a *app) openCertificateStore(ctx context.Context, r *renewal.Renewal) store.Store {
	if r.StorePlugin == "" {
		return nil
	}
	log := a.log.With(logger.RenewalID(r.ID.String()), logger.Plugin(r.StorePlugin))

	cfg, err := store.Decode(r.StorePlugin, r.StoreOptions)
	if err != nil {
		log.WarnContext(ctx, "invalid certificate store settings", logger.Error(err))
		return nil
	}
	s, err := store.Open(ctx, cfg, a.s3Opts...)
	if err != nil {
		log.WarnContext(ctx, "failed to open certificate store", logger.Error(err))
		return nil
	}
	return s
}

func (a *app) describeTarget(ctx context.Context, t *target.Target, certs store.Store) planTarget {
	pt := planTarget{
		SiteID: t.SiteID,
		Host:   t.Host,
		Names:  t.Hosts(true),
	}

	if _, err := validation.ProviderFor(t); err != nil {
		if !errors.Is(err, validation.ErrNotConfigured) {
			pt.ValidationError = err.Error()
		}
	} else {
		pt.Validation = t.Validation.PluginName
	}

	if certs != nil {
		_, err := certs.Get(ctx, t.Host)
		switch {
		case err == nil:
			pt.Cached = boolPtr(true)
		case errors.Is(err, autocert.ErrCacheMiss):
			pt.Cached = boolPtr(false)
		default:
			a.log.WarnContext(ctx, "certificate lookup failed", logger.Host(t.Host), logger.Error(err))
		}
	}
	return pt
}

func boolPtr(b bool) *bool { return &b }
