package target_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitecert/core/target"
)

func TestTargetHosts(t *testing.T) {
	tests := []struct {
		name    string
		target  target.Target
		unicode bool
		want    []string
	}{
		{
			name: "dns host first",
			target: target.Target{
				Host:             "www.example.com",
				HostIsDNS:        true,
				AlternativeNames: target.NewNameSet("example.com", "www.example.com"),
			},
			want: []string{"www.example.com", "example.com"},
		},
		{
			name: "non dns host is skipped",
			target: target.Target{
				Host:             "Default Web Site",
				AlternativeNames: target.NewNameSet("a.com"),
			},
			want: []string{"a.com"},
		},
		{
			name: "exclusions removed",
			target: target.Target{
				AlternativeNames: target.NewNameSet("a.com", "b.com", "c.com"),
				ExcludeBindings:  target.ParseNameList("B.com"),
			},
			want: []string{"a.com", "c.com"},
		},
		{
			name: "idn rendered in unicode",
			target: target.Target{
				AlternativeNames: target.NewNameSet("xn--bcher-kva.example"),
			},
			unicode: true,
			want:    []string{"bücher.example"},
		},
		{
			name: "idn kept ascii",
			target: target.Target{
				AlternativeNames: target.NewNameSet("xn--bcher-kva.example"),
			},
			want: []string{"xn--bcher-kva.example"},
		},
		{
			name:   "empty",
			target: target.Target{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Hosts(tt.unicode))
		})
	}
}

func TestTargetCheck(t *testing.T) {
	t.Run("no hosts", func(t *testing.T) {
		tg := &target.Target{AlternativeNames: target.NewNameSet("a.com"), ExcludeBindings: target.NewNameSet("a.com")}
		assert.ErrorIs(t, tg.Check(), target.ErrNoHosts)
	})

	t.Run("unicode exclusion of an ascii name", func(t *testing.T) {
		tg := &target.Target{
			AlternativeNames: target.NewNameSet("xn--bcher-kva.de"),
			ExcludeBindings:  target.NewNameSet("bücher.de"),
		}
		assert.Empty(t, tg.Hosts(true))
		assert.ErrorIs(t, tg.Check(), target.ErrNoHosts)
	})

	t.Run("too many names", func(t *testing.T) {
		tg := &target.Target{}
		for i := 0; i <= target.MaxNames; i++ {
			tg.AlternativeNames.Add(fmt.Sprintf("h%d.example.com", i))
		}
		assert.ErrorIs(t, tg.Check(), target.ErrTooManyNames)
	})

	t.Run("ok", func(t *testing.T) {
		tg := &target.Target{AlternativeNames: target.NewNameSet("a.com")}
		assert.NoError(t, tg.Check())
	})
}

func TestTargetSourceSites(t *testing.T) {
	single := &target.Target{SiteID: 7}
	assert.False(t, single.IsAggregate())
	assert.Equal(t, []target.SiteID{7}, single.SourceSites().IDs())

	agg := &target.Target{Sources: target.NewSiteSet(2, 1)}
	assert.True(t, agg.IsAggregate())
	assert.Equal(t, []target.SiteID{2, 1}, agg.SourceSites().IDs())

	empty := &target.Target{}
	assert.Equal(t, 0, empty.SourceSites().Len())
}

func TestTargetCloneAndInherit(t *testing.T) {
	src := &target.Target{
		Sources:          target.NewSiteSet(1, 2),
		AlternativeNames: target.NewNameSet("a.com"),
		ExcludeBindings:  target.NewNameSet("b.com"),
		Validation: target.Validation{
			PluginName:  "filesystem",
			HTTPOptions: json.RawMessage(`{"path":"/srv"}`),
		},
	}

	c := src.Clone()
	c.AlternativeNames.Add("z.com")
	c.Sources.Add(9)
	c.Validation.HTTPOptions[2] = 'X'
	assert.Equal(t, 1, src.AlternativeNames.Len())
	assert.Equal(t, 2, src.Sources.Len())
	assert.JSONEq(t, `{"path":"/srv"}`, string(src.Validation.HTTPOptions))

	dst := &target.Target{SiteID: 1}
	dst.InheritSettings(src)
	assert.Equal(t, []string{"b.com"}, dst.ExcludeBindings.Names())
	assert.Equal(t, "filesystem", dst.Validation.PluginName)
	assert.JSONEq(t, `{"path":"/srv"}`, string(dst.Validation.HTTPOptions))

	dst.InheritSettings(nil)
	assert.Equal(t, "filesystem", dst.Validation.PluginName)
}

func TestTargetJSONRoundTrip(t *testing.T) {
	src := &target.Target{
		Host:             "1,2",
		Sources:          target.NewSiteSet(1, 2),
		AllSites:         true,
		AlternativeNames: target.NewNameSet("a.com", "b.com"),
		WebRootPath:      target.NoFileSystemWebRoot,
		Validation:       target.Validation{PluginName: "selfhosting", HTTPOptions: json.RawMessage(`{"port":80}`)},
	}

	data, err := json.Marshal(src)
	require.NoError(t, err)

	var got target.Target
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, src.Sources.IDs(), got.Sources.IDs())
	assert.Equal(t, src.AlternativeNames.Names(), got.AlternativeNames.Names())
	assert.True(t, got.AllSites)
	assert.Equal(t, target.NoFileSystemWebRoot, got.WebRootPath)
	assert.JSONEq(t, `{"port":80}`, string(got.Validation.HTTPOptions))
}
