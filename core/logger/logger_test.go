package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sitecert/core/logger"
)

type ctxKey struct{}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("sitecert"),
		logger.WithOutput(&buf),
		logger.WithContextValue("renewal_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "r-1")
	log.InfoContext(ctx, "planned", logger.SiteID(3), logger.Error(nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "planned", rec["msg"])
	assert.Equal(t, "sitecert", rec["service"])
	assert.Equal(t, "r-1", rec["renewal_id"])
	assert.EqualValues(t, 3, rec["site_id"])
	assert.NotContains(t, rec, "error")
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestAttrHelpers(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	assert.True(t, logger.Host("").Equal(slog.Attr{}))
	assert.True(t, logger.Plugin("").Equal(slog.Attr{}))
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))

	a := logger.Errors(nil, errors.New("boom"))
	assert.Equal(t, "errors", a.Key)
	group := a.Value.Group()
	require.Len(t, group, 1)
	assert.Equal(t, "1", group[0].Key)

	assert.Equal(t, "site_id", logger.SiteID(1).Key)
	assert.Equal(t, "selection", logger.Selection("s").Key)
}

func TestDiscard(t *testing.T) {
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
