package validation

import (
	"context"
	"strings"

	"github.com/go-acme/lego/v4/challenge"
	"github.com/go-acme/lego/v4/providers/http/webroot"

	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/target"
)

const (
	FilesystemName = "filesystem"

	// OptionWebRoot overrides the web root used for challenge files.
	OptionWebRoot = "WebRoot"
)

// FilesystemConfig configures the filesystem plugin.
type FilesystemConfig struct {
	Path string `json:"path,omitempty"`
}

func (FilesystemConfig) PluginName() string { return FilesystemName }

// Provider returns a webroot provider for t. An explicit Path wins over the
// target's web root.
func (c FilesystemConfig) Provider(t *target.Target) (challenge.Provider, error) {
	root := strings.TrimSpace(c.Path)
	if root == "" && t != nil {
		root = t.WebRootPath
	}
	if root == "" || root == target.NoFileSystemWebRoot {
		return nil, ErrNoWebRoot
	}
	p, err := webroot.NewHTTPProvider(root)
	if err != nil {
		return nil, err
	}
	return p, nil
}

type filesystemFactory struct{}

// Filesystem returns the filesystem plugin factory.
func Filesystem() plugin.Factory { return filesystemFactory{} }

func (filesystemFactory) Name() string { return FilesystemName }
func (filesystemFactory) Description() string {
	return "Save verification files on the file system"
}
func (filesystemFactory) Match(name string) bool { return matchName(name, FilesystemName) }

func (filesystemFactory) Default(opts plugin.OptionsProvider) (plugin.Config, error) {
	path, _ := opts.String(OptionWebRoot)
	return FilesystemConfig{Path: strings.TrimSpace(path)}, nil
}

func (f filesystemFactory) Acquire(ctx context.Context, opts plugin.OptionsProvider, in plugin.Input, level plugin.RunLevel) (plugin.Config, error) {
	if path, ok := opts.String(OptionWebRoot); ok || level != plugin.RunLevelAdvanced {
		return FilesystemConfig{Path: strings.TrimSpace(path)}, nil
	}
	path, err := in.PromptString(ctx, "Enter a web root for the challenge files, or press enter to use each site's root")
	if err != nil {
		return nil, err
	}
	return FilesystemConfig{Path: strings.TrimSpace(path)}, nil
}

func matchName(name, want string) bool {
	return strings.EqualFold(strings.TrimSpace(name), want)
}
