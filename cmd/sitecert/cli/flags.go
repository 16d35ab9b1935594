package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/sitecert/core/multisite"
	"github.com/dmitrymomot/sitecert/core/options"
)

// pluginFlags are the flags shared by commands that build plugin options.
type pluginFlags struct {
	siteID          string
	excludeBindings string
	hideHTTPS       bool
	raw             []string
}

func (f *pluginFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.siteID, "siteid", "", `comma separated site ids, or "s" for all sites`)
	fs.StringVar(&f.excludeBindings, "excludebindings", "", "comma separated host names to leave out of the certificate")
	fs.BoolVar(&f.hideHTTPS, "hide-https", false, "hide sites that only have https bindings")
	fs.StringArrayVarP(&f.raw, "option", "o", nil, "plugin option as Name=Value, may be repeated")
}

// options merges the raw Name=Value pairs with the dedicated flags. The
// dedicated flags win.
func (f *pluginFlags) options() (*options.Options, error) {
	opts := options.New(nil)
	for _, kv := range f.raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %q, expected Name=Value", ErrInvalidOption, kv)
		}
		opts.Set(name, value)
	}
	opts.SetIf(multisite.OptionSiteID, f.siteID)
	opts.SetIf(multisite.OptionExcludeBindings, f.excludeBindings)
	if f.hideHTTPS {
		opts.Set(multisite.OptionHideHTTPS, "true")
	}
	return opts, nil
}
