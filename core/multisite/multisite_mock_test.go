package multisite_test

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/target"
)

type listCall struct {
	hideHTTPS   bool
	interactive bool
}

type fakeCatalog struct {
	mu    sync.Mutex
	sites []*target.Target
	err   error
	calls []listCall
}

func (c *fakeCatalog) ListSites(_ context.Context, hideHTTPS, interactive bool) ([]*target.Target, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, listCall{hideHTTPS: hideHTTPS, interactive: interactive})
	if c.err != nil {
		return nil, c.err
	}
	out := make([]*target.Target, len(c.sites))
	for i, s := range c.sites {
		out[i] = s.Clone()
	}
	return out, nil
}

func (c *fakeCatalog) setSites(sites ...*target.Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sites = sites
}

// recordingHandler keeps every record for assertions.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) warnings() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []string
	for _, r := range h.records {
		if r.Level == slog.LevelWarn {
			out = append(out, r.Message)
		}
	}
	return out
}

type scriptedInput struct {
	answers []string
	prompts []string
	choices []plugin.Choice
	shown   map[string]string
}

func (in *scriptedInput) ChoiceList(_ context.Context, _ string, choices []plugin.Choice) error {
	in.choices = append(in.choices, choices...)
	return nil
}

func (in *scriptedInput) PromptString(_ context.Context, message string) (string, error) {
	in.prompts = append(in.prompts, message)
	if len(in.answers) == 0 {
		return "", nil
	}
	a := in.answers[0]
	in.answers = in.answers[1:]
	return a, nil
}

func (in *scriptedInput) Show(label, value string) {
	if in.shown == nil {
		in.shown = make(map[string]string)
	}
	in.shown[label] = value
}

func site(id target.SiteID, host, root string, names ...string) *target.Target {
	return &target.Target{
		SiteID:           id,
		Host:             host,
		AlternativeNames: target.NewNameSet(names...),
		WebRootPath:      root,
		PluginName:       "site",
	}
}
