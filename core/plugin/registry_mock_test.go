package plugin_test

import (
	"context"
	"strings"

	"github.com/dmitrymomot/sitecert/core/plugin"
)

type stubConfig struct{ name string }

func (c stubConfig) PluginName() string { return c.name }

type stubFactory struct {
	name string
}

func (f stubFactory) Name() string        { return f.name }
func (f stubFactory) Description() string { return "stub " + f.name }
func (f stubFactory) Match(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), f.name)
}

func (f stubFactory) Default(plugin.OptionsProvider) (plugin.Config, error) {
	return stubConfig{name: f.name}, nil
}

func (f stubFactory) Acquire(context.Context, plugin.OptionsProvider, plugin.Input, plugin.RunLevel) (plugin.Config, error) {
	return stubConfig{name: f.name}, nil
}
