package renewal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/plugin"
	"github.com/dmitrymomot/sitecert/core/target"
)

// Plan is the outcome of planning one renewal.
type Plan struct {
	Renewal   *Renewal
	Targets   []*target.Target
	Cancelled bool
}

// Planner maps stored renewals onto the targets they currently cover.
type Planner struct {
	plugin plugin.TargetPlugin
	store  Store
	log    *slog.Logger
	now    func() time.Time
	prune  bool
}

type PlannerOption func(*Planner)

func WithLogger(l *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if l != nil {
			p.log = l
		}
	}
}

// WithPruneCancelled deletes renewals whose refresh cancelled them.
func WithPruneCancelled(prune bool) PlannerOption {
	return func(p *Planner) { p.prune = prune }
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) PlannerOption {
	return func(p *Planner) {
		if now != nil {
			p.now = now
		}
	}
}

func NewPlanner(tp plugin.TargetPlugin, store Store, opts ...PlannerOption) *Planner {
	p := &Planner{
		plugin: tp,
		store:  store,
		log:    logger.Discard(),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(logger.Component("planner"))
	return p
}

// Plan refreshes and splits every stored renewal.
func (p *Planner) Plan(ctx context.Context) ([]Plan, error) {
	renewals, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list renewals: %w", err)
	}

	plans := make([]Plan, 0, len(renewals))
	for _, r := range renewals {
		plan, err := p.planOne(ctx, r)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (p *Planner) planOne(ctx context.Context, r *Renewal) (Plan, error) {
	log := p.log.With(logger.RenewalID(r.ID.String()), logger.Host(r.Target.Host))

	refreshed, err := p.plugin.Refresh(ctx, r.Target)
	if err != nil {
		return Plan{}, fmt.Errorf("refresh renewal %s: %w", r.ID, err)
	}

	if refreshed == nil {
		log.WarnContext(ctx, "renewal cancelled")
		if p.prune {
			if err := p.store.Delete(ctx, r.ID); err != nil {
				return Plan{}, fmt.Errorf("prune renewal %s: %w", r.ID, err)
			}
		}
		return Plan{Renewal: r, Cancelled: true}, nil
	}

	if refreshed != r.Target {
		r.Target = refreshed
		r.UpdatedAt = p.now()
		if err := p.store.Save(ctx, r); err != nil {
			return Plan{}, fmt.Errorf("save refreshed renewal %s: %w", r.ID, err)
		}
		log.InfoContext(ctx, "renewal refreshed")
	}

	targets, err := p.plugin.Split(ctx, refreshed)
	if err != nil {
		return Plan{}, fmt.Errorf("split renewal %s: %w", r.ID, err)
	}
	log.DebugContext(ctx, "renewal planned", logger.Count("targets", len(targets)))
	return Plan{Renewal: r, Targets: targets}, nil
}
