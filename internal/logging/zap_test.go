package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return WrapZap(zap.New(core).Sugar()), logs
}

func TestZapLogger_LevelsAndFields(t *testing.T) {
	log, logs := newObservedLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, "dbg", entries[0].Message)
	assert.Equal(t, int64(1), entries[0].ContextMap()["a"])

	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, zap.ErrorLevel, entries[3].Level)
	assert.Equal(t, int64(4), entries[3].ContextMap()["d"])
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	log, logs := newObservedLogger(t)

	child := log.With("screen", "products")
	child.Info(context.Background(), "loaded", "count", 3)

	entries := logs.FilterMessage("loaded").AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "products", fields["screen"])
	assert.Equal(t, int64(3), fields["count"])
}

func TestNewZapLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := NewZapLogger("verbose")
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.False(t, l.l.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, l.l.Desugar().Core().Enabled(zap.InfoLevel))
}

func TestNew_PicksBackendByFormat(t *testing.T) {
	l, err := New("json", "debug")
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)

	l, err = New("text", "warn")
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := NewNop()
	ctx := context.TODO()
	l.Info(ctx, "x")
	l.With("k", "v").Error(ctx, "y")
}
