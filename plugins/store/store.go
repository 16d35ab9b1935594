package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/sitecert/core/plugin"
)

// Store keeps certificate material by name.
type Store interface {
	autocert.Cache
}

// Register adds every store factory to reg.
func Register(reg *plugin.Registry) error {
	for _, f := range []plugin.Factory{Filesystem(), S3()} {
		if err := reg.Register(plugin.CategoryStore, f); err != nil {
			return err
		}
	}
	return nil
}

// Encode returns the plugin name and JSON options of cfg for persistence.
// A nil cfg encodes to empty values.
func Encode(cfg plugin.Config) (string, json.RawMessage, error) {
	if cfg == nil {
		return "", nil, nil
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg.PluginName(), data, nil
}

// Decode restores a config written by Encode.
func Decode(name string, data json.RawMessage) (plugin.Config, error) {
	switch strings.ToLower(name) {
	case "":
		return nil, ErrNotConfigured
	case FilesystemName:
		var c FilesystemConfig
		if err := unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	case S3Name:
		var c S3Config
		if err := unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
}

// Open builds the store described by cfg.
func Open(ctx context.Context, cfg plugin.Config, opts ...S3Option) (Store, error) {
	switch c := cfg.(type) {
	case nil:
		return nil, ErrNotConfigured
	case FilesystemConfig:
		return c.Open()
	case S3Config:
		s, err := NewS3Cache(ctx, c, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, cfg.PluginName())
	}
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
