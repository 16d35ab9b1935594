package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/sitecert/core/plugin"
)

const (
	FilesystemName = "filesystem"

	// OptionCertificatePath is the directory certificates are written to.
	OptionCertificatePath = "CertificatePath"
)

// FilesystemConfig configures the filesystem store.
type FilesystemConfig struct {
	Dir string `json:"dir"`
}

func (FilesystemConfig) PluginName() string { return FilesystemName }

// Open creates the directory if needed and returns a DirCache over it.
// DirCache writes through a temporary file and a rename.
func (c FilesystemConfig) Open() (Store, error) {
	dir := strings.TrimSpace(c.Dir)
	if dir == "" {
		return nil, fmt.Errorf("%w: empty certificate directory", ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create certificate directory: %w", err)
	}
	return autocert.DirCache(dir), nil
}

type filesystemFactory struct{}

// Filesystem returns the filesystem store factory.
func Filesystem() plugin.Factory { return filesystemFactory{} }

func (filesystemFactory) Name() string        { return FilesystemName }
func (filesystemFactory) Description() string { return "Save certificates to a local directory" }
func (filesystemFactory) Match(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), FilesystemName)
}

func (filesystemFactory) Default(opts plugin.OptionsProvider) (plugin.Config, error) {
	dir, err := opts.RequiredString(OptionCertificatePath)
	if err != nil {
		return nil, err
	}
	return FilesystemConfig{Dir: dir}, nil
}

func (f filesystemFactory) Acquire(ctx context.Context, opts plugin.OptionsProvider, in plugin.Input, _ plugin.RunLevel) (plugin.Config, error) {
	if dir, ok := opts.String(OptionCertificatePath); ok && strings.TrimSpace(dir) != "" {
		return FilesystemConfig{Dir: strings.TrimSpace(dir)}, nil
	}
	dir, err := in.PromptString(ctx, "Enter the directory to store certificates in")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty certificate directory", ErrInvalidConfig)
	}
	return FilesystemConfig{Dir: strings.TrimSpace(dir)}, nil
}
