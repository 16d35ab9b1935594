package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sitecert/core/logger"
)

var ErrNotReady = errors.New("dependency not ready")

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness runs every check in order. All checks run even after a failure;
// the result joins ErrNotReady with each failure.
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) error {
	var errs []error
	for _, c := range checks {
		if c.Fn == nil {
			continue
		}
		if err := c.Fn(ctx); err != nil {
			log.ErrorContext(ctx, "readiness check failed", logger.Component(c.Name), logger.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
			continue
		}
		log.DebugContext(ctx, "readiness check passed", logger.Component(c.Name))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return nil
}
