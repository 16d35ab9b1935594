package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-acme/lego/v4/challenge"
	"github.com/go-acme/lego/v4/challenge/http01"

	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/target"
)

const (
	SelfHostingName = "selfhosting"

	OptionValidationPort        = "ValidationPort"
	OptionValidationInterface   = "ValidationInterface"
	OptionValidationProxyHeader = "ValidationProxyHeader"

	defaultValidationPort = "80"
)

// SelfHostingConfig configures the built-in challenge server.
type SelfHostingConfig struct {
	Interface   string `json:"interface,omitempty"`
	Port        string `json:"port,omitempty"`
	ProxyHeader string `json:"proxy_header,omitempty"`
}

func (SelfHostingConfig) PluginName() string { return SelfHostingName }

// Provider returns an HTTP-01 provider server. The target is not consulted:
// every name is answered on the same listener.
func (c SelfHostingConfig) Provider(*target.Target) (challenge.Provider, error) {
	port := c.Port
	if port == "" {
		port = defaultValidationPort
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return nil, fmt.Errorf("%w: port %q", ErrInvalidConfig, port)
	}

	srv := http01.NewProviderServer(c.Interface, port)
	if c.ProxyHeader != "" {
		srv.SetProxyHeader(c.ProxyHeader)
	}
	return srv, nil
}

type selfHostingFactory struct{}

// SelfHosting returns the selfhosting plugin factory.
func SelfHosting() plugin.Factory { return selfHostingFactory{} }

func (selfHostingFactory) Name() string { return SelfHostingName }
func (selfHostingFactory) Description() string {
	return "Serve verification files from a built-in web server"
}
func (selfHostingFactory) Match(name string) bool { return matchName(name, SelfHostingName) }

func (selfHostingFactory) Default(opts plugin.OptionsProvider) (plugin.Config, error) {
	cfg := SelfHostingConfig{Port: defaultValidationPort}
	if v, ok := opts.String(OptionValidationPort); ok && strings.TrimSpace(v) != "" {
		cfg.Port = strings.TrimSpace(v)
	}
	if v, ok := opts.String(OptionValidationInterface); ok {
		cfg.Interface = strings.TrimSpace(v)
	}
	if v, ok := opts.String(OptionValidationProxyHeader); ok {
		cfg.ProxyHeader = strings.TrimSpace(v)
	}
	if _, err := cfg.Provider(nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f selfHostingFactory) Acquire(ctx context.Context, opts plugin.OptionsProvider, in plugin.Input, level plugin.RunLevel) (plugin.Config, error) {
	cfg, err := f.Default(opts)
	if err != nil || level != plugin.RunLevelAdvanced {
		return cfg, err
	}
	if _, ok := opts.String(OptionValidationPort); ok {
		return cfg, nil
	}

	port, err := in.PromptString(ctx, "Enter the port for the validation server, or press enter for 80")
	if err != nil {
		return nil, err
	}
	sh := cfg.(SelfHostingConfig)
	if p := strings.TrimSpace(port); p != "" {
		sh.Port = p
	}
	if _, err := sh.Provider(nil); err != nil {
		return nil, err
	}
	return sh, nil
}
