// Package cli implements the sitecert command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sitecert/core/catalog"
	"github.com/dmitrymomot/sitecert/core/config"
	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/multisite"
	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/renewal"
	"github.com/dmitrymomot/sitecert/plugins/store"
	"github.com/dmitrymomot/sitecert/plugins/validation"
)

type app struct {
	cfg       *Config
	in        io.Reader
	out       io.Writer
	logOutput io.Writer
	inventory catalog.Inventory
	renewals  renewal.Store
	s3Opts    []store.S3Option

	log      *slog.Logger
	registry *plugin.Registry
	catalog  *catalog.Adapter
	targets  *multisite.Plugin
	backend  *backend
}

// Option configures the root command.
type Option func(*app)

// WithConfig skips loading Config from the environment.
func WithConfig(cfg Config) Option {
	return func(a *app) { a.cfg = &cfg }
}

// WithIO sets the terminal streams. Logs go to logOut.
func WithIO(in io.Reader, out, logOut io.Writer) Option {
	return func(a *app) {
		a.in = in
		a.out = out
		a.logOutput = logOut
	}
}

// WithInventory replaces the inventory file.
func WithInventory(inv catalog.Inventory) Option {
	return func(a *app) { a.inventory = inv }
}

// WithRenewalStore replaces the configured renewal store backend.
func WithRenewalStore(s renewal.Store) Option {
	return func(a *app) { a.renewals = s }
}

// WithS3Options passes options to every S3 certificate store opened by plan.
func WithS3Options(opts ...store.S3Option) Option {
	return func(a *app) { a.s3Opts = append(a.s3Opts, opts...) }
}

// NewRootCmd builds the sitecert command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{
		in:        os.Stdin,
		out:       os.Stdout,
		logOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:          "sitecert",
		Short:        "sitecert combines web server sites into shared certificate renewals",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.logOutput)

	root.AddCommand(
		a.sitesCmd(),
		a.createCmd(),
		a.listCmd(),
		a.deleteCmd(),
		a.planCmd(),
		a.checkCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if a.cfg == nil {
		var cfg Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		a.cfg = &cfg
	}

	logOpts, err := a.cfg.loggerOptions()
	if err != nil {
		return err
	}
	a.log = logger.New(append(logOpts, logger.WithOutput(a.logOutput))...)

	policy, err := multisite.ParseRefreshPolicy(a.cfg.RefreshPolicy)
	if err != nil {
		return err
	}

	a.registry = plugin.NewRegistry()
	if err := validation.Register(a.registry); err != nil {
		return err
	}
	if err := store.Register(a.registry); err != nil {
		return err
	}

	inv := a.inventory
	if inv == nil {
		inv = catalog.NewFileInventory(a.cfg.InventoryPath)
	}
	a.catalog = catalog.New(inv, catalog.WithLogger(a.log))
	a.targets = multisite.New(a.catalog,
		multisite.WithLogger(a.log),
		multisite.WithRefreshPolicy(policy),
	)

	if a.cfg.S3AccessKeyID != "" {
		a.s3Opts = append(a.s3Opts, store.WithStaticCredentials(a.cfg.S3AccessKeyID, a.cfg.S3SecretKey))
	}

	if a.renewals == nil && needsRenewalStore(cmd) {
		b, err := openRenewalStore(ctx, a.cfg.RenewalStore, a.log)
		if err != nil {
			return fmt.Errorf("open renewal store: %w", err)
		}
		a.backend = b
		a.renewals = b.store
	}
	return nil
}

// run wraps a command body so the renewal store is closed even when it fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	err := a.backend.close()
	a.backend = nil
	a.renewals = nil
	return err
}

func needsRenewalStore(cmd *cobra.Command) bool {
	return cmd.Name() != "sites"
}
