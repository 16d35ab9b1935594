package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitecert/core/console"
	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/renewal"
	"github.com/dmitrymomot/sitecert/core/target"
	"github.com/dmitrymomot/sitecert/plugins/store"
	"github.com/dmitrymomot/sitecert/plugins/validation"
)

func (a *app) createCmd() *cobra.Command {
	var (
		flags       pluginFlags
		interactive bool
		validator   string
		storeName   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Combine sites into one certificate and schedule its renewal",
		Args:  cobra.NoArgs,
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose sites and plugins interactively")
	cmd.Flags().StringVar(&validator, "validation", "", "validation plugin (default from SITECERT_VALIDATION)")
	cmd.Flags().StringVar(&storeName, "store", "", "certificate store plugin (default from SITECERT_STORE)")

	cmd.RunE = a.run(func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		opts, err := flags.options()
		if err != nil {
			return err
		}

		level := plugin.RunLevelUnattended
		var in plugin.Input
		if interactive {
			level = plugin.RunLevelSimple
			in = console.New(cmd.InOrStdin(), cmd.OutOrStdout())
		}

		var t *target.Target
		if level.Interactive() {
			t, err = a.targets.Acquire(ctx, opts, in, level)
		} else {
			t, err = a.targets.Default(ctx, opts)
		}
		if err != nil {
			return err
		}
		if t == nil {
			return ErrNothingSelected
		}
		if err := t.Check(); err != nil {
			return err
		}

		if validator == "" {
			validator = a.cfg.ValidationPlugin
		}
		vcfg, err := a.pluginConfig(ctx, plugin.CategoryValidation, validator, opts, in, level)
		if err != nil {
			return err
		}
		if err := validation.Encode(t, vcfg); err != nil {
			return err
		}

		if storeName == "" {
			storeName = a.cfg.StorePlugin
		}
		scfg, err := a.pluginConfig(ctx, plugin.CategoryStore, storeName, opts, in, level)
		if err != nil {
			return err
		}

		r := renewal.New(t)
		if r.StorePlugin, r.StoreOptions, err = store.Encode(scfg); err != nil {
			return err
		}
		if err := a.renewals.Save(ctx, r); err != nil {
			return fmt.Errorf("save renewal: %w", err)
		}

		a.log.InfoContext(ctx, "renewal created",
			logger.RenewalID(r.ID.String()),
			logger.Host(t.Host),
			logger.Count("names", len(t.Hosts(false))),
		)
		fmt.Fprintln(cmd.OutOrStdout(), r.ID)
		return nil
	})
	return cmd
}

// pluginConfig resolves name in category and builds its config. Unknown or
// empty names select the Null factory, which yields a nil config.
func (a *app) pluginConfig(ctx context.Context, category plugin.Category, name string, opts plugin.OptionsProvider, in plugin.Input, level plugin.RunLevel) (plugin.Config, error) {
	f := a.registry.Select(category, name)
	if plugin.IsNull(f) && name != "" {
		a.log.WarnContext(ctx, "unknown plugin, none selected", logger.Category(string(category)), logger.Plugin(name))
	}

	var (
		cfg plugin.Config
		err error
	)
	if level.Interactive() {
		cfg, err = f.Acquire(ctx, opts, in, level)
	} else {
		cfg, err = f.Default(opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s plugin %s: %w", category, f.Name(), err)
	}
	return cfg, nil
}
