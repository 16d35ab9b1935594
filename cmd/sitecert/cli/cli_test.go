package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/sitecert/cmd/sitecert/cli"
	"github.com/dmitrymomot/sitecert/core/catalog"
	"github.com/dmitrymomot/sitecert/core/health"
	"github.com/dmitrymomot/sitecert/core/options"
	"github.com/dmitrymomot/sitecert/core/renewal"
	"github.com/dmitrymomot/sitecert/plugins/store"
	"github.com/dmitrymomot/sitecert/plugins/validation"
)

var inventory = catalog.StaticInventory{
	{ID: 1, Name: "alpha", RootPath: "/srv/alpha", Bindings: []catalog.Binding{
		{Host: "alpha.example.com", Protocol: "http"},
		{Host: "www.alpha.example.com", Protocol: "http"},
	}},
	{ID: 2, Name: "beta", RootPath: "/srv/beta", Bindings: []catalog.Binding{
		{Host: "beta.example.com", Protocol: "https"},
	}},
	{ID: 3, Name: "gamma", RootPath: "/srv/gamma", Bindings: []catalog.Binding{
		{Host: "gamma.example.com", Protocol: "http"},
	}},
}

type harness struct {
	t        *testing.T
	renewals *renewal.MemoryStore
	cfg      cli.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t:        t,
		renewals: renewal.NewMemoryStore(),
		cfg: cli.Config{
			RefreshPolicy: "keep",
			RenewalStore:  cli.BackendMemory,
			LogLevel:      "debug",
			LogFormat:     "text",
		},
	}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()

	var out, logs bytes.Buffer
	root := cli.NewRootCmd(
		cli.WithConfig(h.cfg),
		cli.WithIO(strings.NewReader(stdin), &out, &logs),
		cli.WithInventory(inventory),
		cli.WithRenewalStore(h.renewals),
	)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSites(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "sites", "--hide-https")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "alpha.example.com,www.alpha.example.com")
	assert.Contains(t, lines[2], "beta")
	assert.Contains(t, lines[2], "true")
	assert.Contains(t, lines[3], "false")
}

func TestCreateAndPlan(t *testing.T) {
	h := newHarness(t)
	certDir := t.TempDir()

	out, err := h.run("", "create",
		"--siteid", "2,1",
		"--excludebindings", "www.alpha.example.com",
		"--validation", "filesystem",
		"-o", validation.OptionWebRoot+"="+t.TempDir(),
		"--store", "filesystem",
		"-o", store.OptionCertificatePath+"="+certDir,
	)
	require.NoError(t, err)

	renewals, err := h.renewals.List(context.Background())
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	r := renewals[0]
	assert.Equal(t, r.ID.String(), strings.TrimSpace(out))
	assert.Equal(t, "2,1", r.Target.SourceSites().String())
	assert.Equal(t, validation.FilesystemName, r.Target.Validation.PluginName)
	assert.Equal(t, store.FilesystemName, r.StorePlugin)

	require.NoError(t, autocert.DirCache(certDir).Put(context.Background(), "alpha", []byte("pem")))

	out, err = h.run("", "plan")
	require.NoError(t, err)

	var plans []struct {
		Renewal string `json:"renewal"`
		Sites   string `json:"sites"`
		Targets []struct {
			SiteID     int64    `json:"site_id"`
			Host       string   `json:"host"`
			Names      []string `json:"names"`
			Validation string   `json:"validation"`
			Cached     *bool    `json:"cached"`
		} `json:"targets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, r.ID.String(), plans[0].Renewal)

	targets := plans[0].Targets
	require.Len(t, targets, 2)
	assert.Equal(t, int64(1), targets[0].SiteID)
	assert.Equal(t, []string{"alpha.example.com"}, targets[0].Names)
	assert.Equal(t, validation.FilesystemName, targets[0].Validation)
	require.NotNil(t, targets[0].Cached)
	assert.True(t, *targets[0].Cached)

	assert.Equal(t, int64(2), targets[1].SiteID)
	require.NotNil(t, targets[1].Cached)
	assert.False(t, *targets[1].Cached)
}

func TestCreateWithoutPlugins(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "create", "--siteid", "s", "--validation", "dns-azure")
	require.NoError(t, err)

	renewals, err := h.renewals.List(context.Background())
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	assert.True(t, renewals[0].Target.AllSites)
	assert.Empty(t, renewals[0].Target.Validation.PluginName)
	assert.Empty(t, renewals[0].StorePlugin)
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "missing selection", args: []string{"create"}, wantErr: options.ErrMissingOption},
		{name: "unknown site", args: []string{"create", "--siteid", "99999"}, wantErr: cli.ErrNothingSelected},
		{name: "malformed option", args: []string{"create", "--siteid", "1", "-o", "WebRoot"}, wantErr: cli.ErrInvalidOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.run("", tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)

			renewals, err := h.renewals.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, renewals)
		})
	}
}

func TestCreateInteractive(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("3,1\nwww.alpha.example.com\n", "create", "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha (2 bindings) [@/srv/alpha]")
	assert.Contains(t, out, "Host names: gamma.example.com, alpha.example.com, www.alpha.example.com")

	renewals, err := h.renewals.List(context.Background())
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	assert.Equal(t, "3,1", renewals[0].Target.SourceSites().String())
	assert.Equal(t, []string{"www.alpha.example.com"}, renewals[0].Target.ExcludeBindings.Names())
}

func TestListAndDelete(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "create", "--siteid", "1")
	require.NoError(t, err)
	renewals, err := h.renewals.List(context.Background())
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	id := renewals[0].ID.String()

	out, err := h.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "none")

	_, err = h.run("", "delete", "not-a-uuid")
	assert.ErrorIs(t, err, cli.ErrInvalidOption)

	_, err = h.run("", "delete", id)
	require.NoError(t, err)

	_, err = h.run("", "delete", id)
	assert.ErrorIs(t, err, renewal.ErrNotFound)
}

func TestInvalidConfig(t *testing.T) {
	h := newHarness(t)

	h.cfg.LogFormat = "xml"
	_, err := h.run("", "list")
	assert.ErrorIs(t, err, cli.ErrInvalidConfig)

	h.cfg.LogFormat = "json"
	h.cfg.RenewalStore = "etcd"
	var out, logs bytes.Buffer
	root := cli.NewRootCmd(cli.WithConfig(h.cfg), cli.WithIO(strings.NewReader(""), &out, &logs), cli.WithInventory(inventory))
	root.SetArgs([]string{"list"})
	assert.ErrorIs(t, root.ExecuteContext(context.Background()), cli.ErrUnknownRenewalStore)
}

func TestCheck(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "check")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	var stdout, logs bytes.Buffer
	root := cli.NewRootCmd(
		cli.WithConfig(h.cfg),
		cli.WithIO(strings.NewReader(""), &stdout, &logs),
		cli.WithInventory(catalog.NewFileInventory(t.TempDir()+"/missing.yaml")),
		cli.WithRenewalStore(h.renewals),
	)
	root.SetArgs([]string{"check"})
	err = root.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, health.ErrNotReady)
	assert.ErrorIs(t, err, catalog.ErrInventoryUnavailable)
}
