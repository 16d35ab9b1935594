// Package config fills environment-tagged structs with caarlos0/env.
//
// A .env file in the working directory is read once, before the first
// struct is parsed. Each struct type is parsed once; later Load calls for
// the same type return the cached value, so backend packages can declare
// their own Config and load it lazily:
//
//	var db sqlite.Config // SQLITE_DSN
//	if err := config.Load(&db); err != nil {
//		return err
//	}
//	conn, err := sqlite.Open(ctx, db.DSN)
//
// The CLI settings live in one struct:
//
//	type Config struct {
//		InventoryPath string `env:"SITECERT_INVENTORY" envDefault:"sites.yaml"`
//		RenewalStore  string `env:"SITECERT_RENEWAL_STORE" envDefault:"sqlite"`
//	}
//
// Parse failures are reported as ErrParsingConfig joined with the cause.
// MustLoad panics instead and is meant for program start-up.
package config
