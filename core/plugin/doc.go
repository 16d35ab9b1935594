// Package plugin defines the plugin categories of the certificate engine and
// the contracts shared between the engine and concrete plugins.
//
// Every category (target, validation, store, installation) is served by a
// set of factories registered in a Registry. A factory matches a plugin name,
// builds its configuration from command line options (Default) or from an
// interactive session (Acquire), and describes itself for listings.
//
// When no factory of a category matches, Registry.Select returns the Null
// factory of that category instead of failing. The Null factory never
// matches any name and always yields a nil configuration, so callers can
// treat "no plugin configured" as an ordinary selection:
//
//	reg := plugin.NewRegistry()
//	reg.Register(plugin.CategoryStore, filesystemFactory)
//
//	f := reg.Select(plugin.CategoryStore, "s3") // Null: nothing registered as "s3"
//	cfg, err := f.Default(opts)                 // nil, nil
//	if plugin.IsNull(f) {
//		// skip the store step
//	}
//
// The package also defines the collaborators plugins consume: OptionsProvider
// for named command line options and Input for user interaction.
package plugin
