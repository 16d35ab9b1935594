package validation_test

import (
	"context"
	"testing"

	"github.com/go-acme/lego/v4/challenge/http01"
	"github.com/go-acme/lego/v4/providers/http/webroot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitecert/core/options"
	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/target"
	"github.com/dmitrymomot/sitecert/plugins/validation"
)

type promptInput struct {
	answer  string
	prompts int
}

func (p *promptInput) ChoiceList(context.Context, string, []plugin.Choice) error { return nil }
func (p *promptInput) Show(string, string) {}
func (p *promptInput) PromptString(context.Context, string) (string, error) {
	p.prompts++
	return p.answer, nil
}

func TestRegister(t *testing.T) {
	reg := plugin.NewRegistry()
	require.NoError(t, validation.Register(reg))

	assert.Equal(t, validation.FilesystemName, reg.Select(plugin.CategoryValidation, "FileSystem").Name())
	assert.Equal(t, validation.SelfHostingName, reg.Select(plugin.CategoryValidation, "selfhosting").Name())
	assert.True(t, plugin.IsNull(reg.Select(plugin.CategoryValidation, "dns-azure")))
}

func TestFilesystemProvider(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     validation.FilesystemConfig
		target  *target.Target
		wantErr error
	}{
		{name: "site web root", target: &target.Target{WebRootPath: dir}},
		{name: "explicit path wins", cfg: validation.FilesystemConfig{Path: dir}, target: &target.Target{WebRootPath: target.NoFileSystemWebRoot}},
		{name: "aggregate without path", target: &target.Target{WebRootPath: target.NoFileSystemWebRoot}, wantErr: validation.ErrNoWebRoot},
		{name: "no web root", target: &target.Target{}, wantErr: validation.ErrNoWebRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.cfg.Provider(tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &webroot.HTTPProvider{}, p)
		})
	}
}

func TestSelfHostingProvider(t *testing.T) {
	p, err := validation.SelfHostingConfig{Port: "8080", ProxyHeader: "X-Forwarded-Host"}.Provider(nil)
	require.NoError(t, err)
	assert.IsType(t, &http01.ProviderServer{}, p)

	_, err = validation.SelfHostingConfig{Port: "http"}.Provider(nil)
	assert.ErrorIs(t, err, validation.ErrInvalidConfig)
}

func TestFactoriesDefault(t *testing.T) {
	opts := options.New(map[string]string{
		validation.OptionWebRoot:        " /srv/www ",
		validation.OptionValidationPort: "8080",
	})

	cfg, err := validation.Filesystem().Default(opts)
	require.NoError(t, err)
	assert.Equal(t, validation.FilesystemConfig{Path: "/srv/www"}, cfg)

	cfg, err = validation.SelfHosting().Default(opts)
	require.NoError(t, err)
	assert.Equal(t, validation.SelfHostingConfig{Port: "8080"}, cfg)

	_, err = validation.SelfHosting().Default(options.New(map[string]string{validation.OptionValidationPort: "0"}))
	assert.ErrorIs(t, err, validation.ErrInvalidConfig)
}

func TestFactoriesAcquire(t *testing.T) {
	ctx := context.Background()

	t.Run("filesystem prompts in advanced mode", func(t *testing.T) {
		in := &promptInput{answer: " /var/www "}
		cfg, err := validation.Filesystem().Acquire(ctx, options.New(nil), in, plugin.RunLevelAdvanced)
		require.NoError(t, err)
		assert.Equal(t, validation.FilesystemConfig{Path: "/var/www"}, cfg)
		assert.Equal(t, 1, in.prompts)
	})

	t.Run("filesystem simple mode uses site roots", func(t *testing.T) {
		in := &promptInput{}
		cfg, err := validation.Filesystem().Acquire(ctx, options.New(nil), in, plugin.RunLevelSimple)
		require.NoError(t, err)
		assert.Equal(t, validation.FilesystemConfig{}, cfg)
		assert.Zero(t, in.prompts)
	})

	t.Run("selfhosting prompts for port", func(t *testing.T) {
		in := &promptInput{answer: "8081"}
		cfg, err := validation.SelfHosting().Acquire(ctx, options.New(nil), in, plugin.RunLevelAdvanced)
		require.NoError(t, err)
		assert.Equal(t, validation.SelfHostingConfig{Port: "8081"}, cfg)
	})

	t.Run("selfhosting rejects bad port", func(t *testing.T) {
		in := &promptInput{answer: "99999"}
		_, err := validation.SelfHosting().Acquire(ctx, options.New(nil), in, plugin.RunLevelAdvanced)
		assert.ErrorIs(t, err, validation.ErrInvalidConfig)
	})
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	agg := &target.Target{Sources: target.NewSiteSet(1, 2), WebRootPath: target.NoFileSystemWebRoot}
	require.NoError(t, validation.Encode(agg, validation.FilesystemConfig{}))
	assert.Equal(t, validation.FilesystemName, agg.Validation.PluginName)

	_, err := validation.ProviderFor(agg)
	assert.ErrorIs(t, err, validation.ErrNoWebRoot, "aggregates resolve only after splitting")

	part := &target.Target{SiteID: 1, WebRootPath: dir}
	part.InheritSettings(agg)
	p, err := validation.ProviderFor(part)
	require.NoError(t, err)
	assert.IsType(t, &webroot.HTTPProvider{}, p)

	require.NoError(t, validation.Encode(part, validation.SelfHostingConfig{Port: "8080"}))
	cfg, err := validation.Decode(part)
	require.NoError(t, err)
	assert.Equal(t, validation.SelfHostingConfig{Port: "8080"}, cfg)

	require.NoError(t, validation.Encode(part, nil))
	_, err = validation.Decode(part)
	assert.ErrorIs(t, err, validation.ErrNotConfigured)

	part.Validation.PluginName = "dns-script"
	_, err = validation.Decode(part)
	assert.ErrorIs(t, err, validation.ErrUnknownPlugin)

	part.Validation.PluginName = validation.FilesystemName
	part.Validation.HTTPOptions = []byte("{")
	_, err = validation.Decode(part)
	assert.ErrorIs(t, err, validation.ErrInvalidConfig)
}
