package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sitecert/core/logger"
)

// Config is read from SITECERT_* environment variables. Backend specific
// settings (SQLITE_DSN, PG_CONN_URL, REDIS_URL, MONGODB_URL) are loaded only
// for the selected renewal store.
type Config struct {
	InventoryPath    string `env:"SITECERT_INVENTORY" envDefault:"sites.yaml"`
	RefreshPolicy    string `env:"SITECERT_REFRESH_POLICY" envDefault:"keep"`
	RenewalStore     string `env:"SITECERT_RENEWAL_STORE" envDefault:"sqlite"`
	PruneCancelled   bool   `env:"SITECERT_PRUNE_CANCELLED" envDefault:"false"`
	ValidationPlugin string `env:"SITECERT_VALIDATION"`
	StorePlugin      string `env:"SITECERT_STORE"`
	S3AccessKeyID    string `env:"SITECERT_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"SITECERT_S3_SECRET_KEY"`
	LogLevel         string `env:"SITECERT_LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"SITECERT_LOG_FORMAT" envDefault:"text"`
}

func (c Config) loggerOptions() ([]logger.Option, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	opts := []logger.Option{logger.WithLevel(level), logger.WithAttr(slog.String("service", "sitecert"))}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text":
		opts = append(opts, logger.WithTextFormatter())
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return opts, nil
}
