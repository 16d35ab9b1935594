package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/net/idna"

	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/target"
)

// PluginName is stamped on every candidate produced by the adapter.
const PluginName = "site"

// Catalog lists the certificate target candidates of the web server.
type Catalog interface {
	ListSites(ctx context.Context, hideHTTPS, interactive bool) ([]*target.Target, error)
}

var _ Catalog = (*Adapter)(nil)

// Adapter builds candidates from an Inventory.
type Adapter struct {
	inventory Inventory
	log       *slog.Logger
}

type Option func(*Adapter)

func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

func New(inv Inventory, opts ...Option) *Adapter {
	a := &Adapter{
		inventory: inv,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ListSites returns the candidates sorted by host. Skipped sites are logged
// only when interactive is set.
func (a *Adapter) ListSites(ctx context.Context, hideHTTPS, interactive bool) ([]*target.Target, error) {
	sites, err := a.inventory.Sites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}

	out := make([]*target.Target, 0, len(sites))
	for _, site := range sites {
		names := siteNames(site)
		switch {
		case names.Len() == 0:
			if interactive {
				a.log.InfoContext(ctx, "site has no usable host names",
					logger.SiteID(int64(site.ID)), logger.Host(site.Name))
			}
			continue
		case names.Len() > target.MaxNames:
			if interactive {
				a.log.InfoContext(ctx, "site has too many host names",
					logger.SiteID(int64(site.ID)), logger.Host(site.Name),
					logger.Count("names", names.Len()))
			}
			continue
		}

		out = append(out, &target.Target{
			SiteID:           site.ID,
			Host:             site.Name,
			HostIsDNS:        false,
			AlternativeNames: names,
			Hidden:           hideHTTPS && httpsOnly(site.Bindings),
			WebRootPath:      site.RootPath,
			PluginName:       PluginName,
		})
	}

	slices.SortStableFunc(out, func(x, y *target.Target) int {
		return strings.Compare(x.Host, y.Host)
	})

	if len(out) == 0 && interactive {
		a.log.WarnContext(ctx, "no applicable sites were found")
	}
	return out, nil
}

func siteNames(site Site) target.NameSet {
	var names target.NameSet
	for _, b := range site.Bindings {
		host := strings.ToLower(strings.TrimSpace(b.Host))
		if host == "" || strings.HasPrefix(host, "*") {
			continue
		}
		ascii, err := idna.ToASCII(host)
		if err != nil {
			continue
		}
		names.Add(ascii)
	}
	return names
}

// httpsOnly reports whether every binding is HTTPS or has an HTTPS sibling
// with the same host.
func httpsOnly(bindings []Binding) bool {
	secured := make(map[string]struct{})
	for _, b := range bindings {
		if b.IsHTTPS() {
			secured[strings.ToLower(strings.TrimSpace(b.Host))] = struct{}{}
		}
	}
	for _, b := range bindings {
		if _, ok := secured[strings.ToLower(strings.TrimSpace(b.Host))]; !ok {
			return false
		}
	}
	return true
}
