package catalog_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitecert/core/catalog"
	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/target"
)

func http(host string) catalog.Binding  { return catalog.Binding{Host: host, Protocol: "http"} }
func https(host string) catalog.Binding { return catalog.Binding{Host: host, Protocol: "https"} }

func TestListSites(t *testing.T) {
	inv := catalog.StaticInventory{
		{ID: 2, Name: "shop", RootPath: "/srv/shop", Bindings: []catalog.Binding{
			http("Shop.Example.com"), https("shop.example.com"), http("*.example.com"), http(""),
		}},
		{ID: 1, Name: "blog", RootPath: "/srv/blog", Bindings: []catalog.Binding{
			http("blog.example.com"), http("bücher.example"),
		}},
		{ID: 3, Name: "empty", Bindings: []catalog.Binding{http("*.wild.example")}},
	}

	cat := catalog.New(inv)
	got, err := cat.ListSites(context.Background(), false, false)
	require.NoError(t, err)
	require.Len(t, got, 2)

	blog := got[0]
	assert.Equal(t, target.SiteID(1), blog.SiteID)
	assert.Equal(t, "blog", blog.Host)
	assert.False(t, blog.HostIsDNS)
	assert.Equal(t, "/srv/blog", blog.WebRootPath)
	assert.Equal(t, catalog.PluginName, blog.PluginName)
	assert.Equal(t, []string{"blog.example.com", "xn--bcher-kva.example"}, blog.AlternativeNames.Names())

	shop := got[1]
	assert.Equal(t, target.SiteID(2), shop.SiteID)
	assert.Equal(t, []string{"shop.example.com"}, shop.AlternativeNames.Names())
	assert.False(t, shop.Hidden, "nothing is hidden unless requested")
}

func TestListSitesHidden(t *testing.T) {
	inv := catalog.StaticInventory{
		{ID: 1, Name: "secured", Bindings: []catalog.Binding{http("a.com"), https("a.com")}},
		{ID: 2, Name: "https-only", Bindings: []catalog.Binding{https("b.com")}},
		{ID: 3, Name: "mixed", Bindings: []catalog.Binding{http("c.com"), https("d.com")}},
		{ID: 4, Name: "plain", Bindings: []catalog.Binding{http("e.com")}},
	}

	got, err := catalog.New(inv).ListSites(context.Background(), true, false)
	require.NoError(t, err)

	hidden := map[string]bool{}
	for _, c := range got {
		hidden[c.Host] = c.Hidden
	}
	assert.Equal(t, map[string]bool{
		"secured":    true,
		"https-only": true,
		"mixed":      false,
		"plain":      false,
	}, hidden)
}

func TestListSitesTooManyNames(t *testing.T) {
	var bindings []catalog.Binding
	for i := 0; i <= target.MaxNames; i++ {
		bindings = append(bindings, http(fmt.Sprintf("h%d.example.com", i)))
	}
	inv := catalog.StaticInventory{
		{ID: 1, Name: "big", Bindings: bindings},
		{ID: 2, Name: "ok", Bindings: bindings[:target.MaxNames]},
	}

	var buf bytes.Buffer
	cat := catalog.New(inv, catalog.WithLogger(logger.New(logger.WithOutput(&buf))))

	got, err := cat.ListSites(context.Background(), false, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Host)
	assert.Contains(t, buf.String(), "too many host names")
}

func TestListSitesEmptyWarnsWhenInteractive(t *testing.T) {
	var buf bytes.Buffer
	cat := catalog.New(catalog.StaticInventory{}, catalog.WithLogger(logger.New(logger.WithOutput(&buf))))

	got, err := cat.ListSites(context.Background(), false, false)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, buf.String())

	_, err = cat.ListSites(context.Background(), false, true)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no applicable sites")
}

func TestFileInventory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sites:
  - id: 7
    name: shop
    root_path: /srv/shop
    bindings:
      - host: shop.example.com
        protocol: http
        port: 80
`), 0o600))

	got, err := catalog.New(catalog.NewFileInventory(path)).ListSites(context.Background(), false, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, target.SiteID(7), got[0].SiteID)
	assert.Equal(t, "/srv/shop", got[0].WebRootPath)

	_, err = catalog.NewFileInventory(filepath.Join(dir, "missing.yaml")).Sites(context.Background())
	assert.ErrorIs(t, err, catalog.ErrInventoryUnavailable)
}

func TestParseInventoryInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "sites: [",
		"zero id":      "sites:\n  - name: a\n",
		"duplicate id": "sites:\n  - id: 1\n    name: a\n  - id: 1\n    name: b\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.ParseInventory([]byte(doc))
			assert.ErrorIs(t, err, catalog.ErrInvalidInventory)
		})
	}
}
