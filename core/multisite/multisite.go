package multisite

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dmitrymomot/sitecert/core/catalog"
	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/target"
)

// PluginName is stamped on every aggregated target.
const PluginName = "multisite"

// Option names read by Default and Acquire.
const (
	OptionSiteID          = "SiteId"
	OptionExcludeBindings = "ExcludeBindings"
	OptionHideHTTPS       = "HideHttps"
)

// AllSites is the selection that picks every candidate.
const AllSites = "s"

const (
	promptSelection  = "Enter a comma separated list of site IDs, or 'S' to run for all sites"
	promptExclusions = "Press enter to include all listed hosts, or type a comma-separated lists of exclusions"
)

var _ plugin.TargetPlugin = (*Plugin)(nil)

// Plugin is the multi-site target plugin.
type Plugin struct {
	catalog catalog.Catalog
	log     *slog.Logger
	policy  RefreshPolicy
}

type Option func(*Plugin)

func WithLogger(l *slog.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.log = l
		}
	}
}

// WithRefreshPolicy sets the refresh policy. Defaults to RefreshKeep.
func WithRefreshPolicy(policy RefreshPolicy) Option {
	return func(p *Plugin) {
		if policy != "" {
			p.policy = policy
		}
	}
}

func New(cat catalog.Catalog, opts ...Option) *Plugin {
	p := &Plugin{
		catalog: cat,
		log:     logger.Discard(),
		policy:  RefreshKeep,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(logger.Component(PluginName))
	return p
}

// Policy returns the configured refresh policy.
func (p *Plugin) Policy() RefreshPolicy { return p.policy }

// rejection records a selection entry that could not be used.
type rejection struct {
	entry  string
	reason string
}

// Combine merges the selected candidates into one aggregated target.
// It returns nil when the selection resolves to no candidate.
func (p *Plugin) Combine(candidates []*target.Target, selection string) *target.Target {
	selection = strings.TrimSpace(selection)

	var (
		selected []*target.Target
		rejected []rejection
		all      = strings.EqualFold(selection, AllSites)
	)

	if all {
		selected = candidates
	} else {
		byID := make(map[target.SiteID]*target.Target, len(candidates))
		for _, c := range candidates {
			if _, ok := byID[c.SiteID]; !ok {
				byID[c.SiteID] = c
			}
		}

		var seen target.SiteSet
		entries := make(map[string]struct{})
		for _, entry := range strings.Split(strings.Trim(selection, ", \t"), ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			if _, dup := entries[entry]; dup {
				continue
			}
			entries[entry] = struct{}{}
			id, err := target.ParseSiteID(entry)
			if err != nil {
				rejected = append(rejected, rejection{entry: entry, reason: "invalid site id, should be a number"})
				continue
			}
			c, ok := byID[id]
			if !ok {
				rejected = append(rejected, rejection{entry: entry, reason: "site id not found"})
				continue
			}
			if seen.Add(id) {
				selected = append(selected, c)
			}
		}
	}

	if len(selected) == 0 {
		p.log.Warn("no valid sites selected", logger.Selection(selection), rejectedAttr(rejected))
		return nil
	}
	for _, r := range rejected {
		p.log.Warn(r.reason, logger.Selection(selection), slog.String("entry", r.entry))
	}

	combined := &target.Target{
		HostIsDNS:   false,
		AllSites:    all,
		WebRootPath: target.NoFileSystemWebRoot,
		PluginName:  PluginName,
	}
	for _, c := range selected {
		combined.Sources.Add(c.SiteID)
		combined.AlternativeNames.AddAll(c.AlternativeNames.Names()...)
	}
	combined.Host = combined.Sources.String()
	return combined
}

// Default builds an aggregate from the SiteId and ExcludeBindings options.
func (p *Plugin) Default(ctx context.Context, opts plugin.OptionsProvider) (*target.Target, error) {
	selection, err := opts.RequiredString(OptionSiteID)
	if err != nil {
		return nil, err
	}

	candidates, err := p.catalog.ListSites(ctx, false, false)
	if err != nil {
		return nil, fmt.Errorf("multisite default: %w", err)
	}

	combined := p.Combine(candidates, selection)
	if combined == nil {
		return nil, nil
	}
	if exclude, ok := opts.String(OptionExcludeBindings); ok {
		combined.ExcludeBindings = target.ParseNameList(exclude)
	}
	return combined, nil
}

// Acquire lets the user pick sites and exclusions interactively.
func (p *Plugin) Acquire(ctx context.Context, opts plugin.OptionsProvider, in plugin.Input, _ plugin.RunLevel) (*target.Target, error) {
	candidates, err := p.catalog.ListSites(ctx, opts.Bool(OptionHideHTTPS), true)
	if err != nil {
		return nil, fmt.Errorf("multisite acquire: %w", err)
	}

	visible := make([]*target.Target, 0, len(candidates))
	choices := make([]plugin.Choice, 0, len(candidates))
	for _, c := range candidates {
		if c.Hidden {
			continue
		}
		visible = append(visible, c)
		choices = append(choices, plugin.Choice{
			Label:   fmt.Sprintf("%s (%d bindings) [@%s]", c.Host, c.AlternativeNames.Len(), c.WebRootPath),
			Command: c.SiteID.String(),
		})
	}

	if err := in.ChoiceList(ctx, "Available sites", choices); err != nil {
		return nil, err
	}
	answer, err := in.PromptString(ctx, promptSelection)
	if err != nil {
		return nil, err
	}

	combined := p.Combine(visible, strings.ToLower(strings.TrimSpace(answer)))
	if combined == nil {
		return nil, nil
	}

	in.Show("Host names", strings.Join(combined.AlternativeNames.Names(), ", "))
	exclusions, err := in.PromptString(ctx, promptExclusions)
	if err != nil {
		return nil, err
	}
	combined.ExcludeBindings = target.ParseNameList(exclusions)
	return combined, nil
}

// Refresh revalidates a scheduled target according to the refresh policy.
// A nil target cancels the renewal.
func (p *Plugin) Refresh(ctx context.Context, scheduled *target.Target) (*target.Target, error) {
	if scheduled == nil || p.policy == RefreshKeep {
		return scheduled, nil
	}

	candidates, err := p.catalog.ListSites(ctx, false, false)
	if err != nil {
		return nil, fmt.Errorf("multisite refresh: %w", err)
	}
	byID := make(map[target.SiteID]*target.Target, len(candidates))
	for _, c := range candidates {
		byID[c.SiteID] = c
	}

	var kept target.SiteSet
	for _, id := range scheduled.SourceSites().IDs() {
		if _, ok := byID[id]; ok {
			kept.Add(id)
			continue
		}
		p.log.WarnContext(ctx, "site no longer exists", logger.SiteID(int64(id)), logger.Host(scheduled.Host))
	}

	if p.policy == RefreshReconcile && scheduled.AllSites {
		for _, c := range candidates {
			if kept.Add(c.SiteID) {
				p.log.InfoContext(ctx, "site joined aggregate", logger.SiteID(int64(c.SiteID)), logger.Host(c.Host))
			}
		}
	}

	if kept.Len() == 0 {
		p.log.WarnContext(ctx, "none of the scheduled sites exist, cancelling renewal", logger.Host(scheduled.Host))
		return nil, nil
	}

	refreshed := scheduled.Clone()
	if !scheduled.IsAggregate() {
		c := byID[scheduled.SiteID]
		refreshed.Host = c.Host
		refreshed.AlternativeNames = c.AlternativeNames.Clone()
		refreshed.WebRootPath = c.WebRootPath
		return unlessUnchanged(scheduled, refreshed), nil
	}

	refreshed.Sources = kept
	refreshed.Host = kept.String()
	refreshed.AlternativeNames = target.NameSet{}
	for _, id := range kept.IDs() {
		refreshed.AlternativeNames.AddAll(byID[id].AlternativeNames.Names()...)
	}
	return unlessUnchanged(scheduled, refreshed), nil
}

// unlessUnchanged returns scheduled itself when refreshing changed nothing,
// so callers can skip persisting it.
func unlessUnchanged(scheduled, refreshed *target.Target) *target.Target {
	if scheduled.Host == refreshed.Host &&
		scheduled.WebRootPath == refreshed.WebRootPath &&
		slices.Equal(scheduled.Sources.IDs(), refreshed.Sources.IDs()) &&
		slices.Equal(scheduled.AlternativeNames.Names(), refreshed.AlternativeNames.Names()) {
		return scheduled
	}
	return refreshed
}

// Split maps a scheduled target onto the current catalog sites it was built
// from. Missing sites are skipped silently.
func (p *Plugin) Split(ctx context.Context, scheduled *target.Target) ([]*target.Target, error) {
	if scheduled == nil {
		return nil, nil
	}

	candidates, err := p.catalog.ListSites(ctx, false, false)
	if err != nil {
		return nil, fmt.Errorf("multisite split: %w", err)
	}

	wanted := scheduled.SourceSites()
	out := make([]*target.Target, 0, wanted.Len())
	for _, c := range candidates {
		if !wanted.Contains(c.SiteID) {
			continue
		}
		part := c.Clone()
		part.InheritSettings(scheduled)
		if len(part.Hosts(true)) == 0 {
			continue
		}
		out = append(out, part)
	}
	return out, nil
}

func rejectedAttr(rs []rejection) slog.Attr {
	if len(rs) == 0 {
		return slog.Attr{}
	}
	attrs := make([]slog.Attr, len(rs))
	for i, r := range rs {
		attrs[i] = slog.String(r.entry, r.reason)
	}
	return logger.Group("rejected", attrs...)
}
