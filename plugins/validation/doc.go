// Package validation provides the HTTP validation plugin factories and turns
// a target's stored validation settings into a lego challenge provider.
//
// Two plugins are available:
//
//   - filesystem writes challenge files below a web root. Without an
//     explicit path the target's own web root is used, so the settings of an
//     aggregated target resolve to a different directory for every site
//     after splitting. Aggregated targets themselves have no web root.
//   - selfhosting answers challenges from a built-in HTTP server.
//
// Factories produce a plugin.Config; Encode stores it in the target's
// validation settings and ProviderFor rebuilds the provider at renewal time:
//
//	cfg, err := reg.Select(plugin.CategoryValidation, "filesystem").Default(opts)
//	if err != nil {
//		return err
//	}
//	if err := validation.Encode(t, cfg); err != nil {
//		return err
//	}
//
//	// later, for each split target
//	provider, err := validation.ProviderFor(part)
package validation
