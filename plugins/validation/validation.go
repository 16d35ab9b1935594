package validation

import (
	"encoding/json"
	"fmt"

	"github.com/go-acme/lego/v4/challenge"

	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/target"
)

// Register adds every validation factory to reg.
func Register(reg *plugin.Registry) error {
	for _, f := range []plugin.Factory{Filesystem(), SelfHosting()} {
		if err := reg.Register(plugin.CategoryValidation, f); err != nil {
			return err
		}
	}
	return nil
}

// Encode stores cfg in the HTTP validation settings of t. A nil cfg, as
// returned by the Null factory, clears the settings.
func Encode(t *target.Target, cfg plugin.Config) error {
	if cfg == nil {
		t.Validation.PluginName = ""
		t.Validation.HTTPOptions = nil
		return nil
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	t.Validation.PluginName = cfg.PluginName()
	t.Validation.HTTPOptions = data
	return nil
}

// Decode restores the validation config stored in t.
func Decode(t *target.Target) (plugin.Config, error) {
	var cfg plugin.Config
	switch t.Validation.PluginName {
	case "":
		return nil, ErrNotConfigured
	case FilesystemName:
		var c FilesystemConfig
		if err := unmarshal(t.Validation.HTTPOptions, &c); err != nil {
			return nil, err
		}
		cfg = c
	case SelfHostingName:
		var c SelfHostingConfig
		if err := unmarshal(t.Validation.HTTPOptions, &c); err != nil {
			return nil, err
		}
		cfg = c
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, t.Validation.PluginName)
	}
	return cfg, nil
}

// ProviderFor builds the challenge provider for t from its stored settings.
func ProviderFor(t *target.Target) (challenge.Provider, error) {
	cfg, err := Decode(t)
	if err != nil {
		return nil, err
	}
	p, ok := cfg.(interface {
		Provider(*target.Target) (challenge.Provider, error)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, cfg.PluginName())
	}
	return p.Provider(t)
}

func unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
