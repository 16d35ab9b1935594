package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Attribute helpers return an empty Attr for nil or empty input, which slog
// drops, so callers never need nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Errors
// ============================================================================

// Errors groups the non-nil errors under the key "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Timing
// ============================================================================

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed logs the time passed since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Generic metadata
// ============================================================================

// ID creates an identifier attribute with a custom key.
func ID(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Result creates an attribute for operation results (success/failure/skipped).
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// ============================================================================
// Certificate domain
// ============================================================================

// SiteID creates an attribute for a catalog site id.
func SiteID(id int64) slog.Attr {
	return slog.Int64("site_id", id)
}

// Host creates an attribute for a host name or target display host.
func Host(host string) slog.Attr {
	if host == "" {
		return slog.Attr{}
	}
	return slog.String("host", host)
}

// Selection creates an attribute for a raw site selection string.
func Selection(s string) slog.Attr {
	return slog.String("selection", s)
}

// Plugin creates an attribute for a plugin name.
func Plugin(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("plugin", name)
}

// Category creates an attribute for a plugin category.
func Category(name string) slog.Attr {
	return slog.String("category", name)
}

// RenewalID creates an attribute for a renewal record id.
func RenewalID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("renewal_id", id)
}
