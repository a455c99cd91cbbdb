package telemetry

import (
	"context"
	"testing"

	"github.com/moldshop/erp/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	for _, cfg := range []config.TelemetryConfig{
		{Enabled: false, LogsEnabled: true},
		{Enabled: true, LogsEnabled: false},
	} {
		provider, err := NewLoggerProvider(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		assert.False(t, provider.IsEnabled())

		base := zap.NewNop()
		assert.Same(t, base, provider.Bridge(base, zapcore.InfoLevel))
		assert.NoError(t, provider.ForceFlush(ctx))
		assert.NoError(t, provider.Shutdown(ctx))
	}
}

func TestLoggerProvider_BridgeKeepsLocalSink(t *testing.T) {
	ctx := context.Background()

	provider, err := NewLoggerProvider(ctx, config.TelemetryConfig{
		Enabled:           true,
		LogsEnabled:       true,
		CollectorEndpoint: "localhost:19999",
		ServiceName:       "moldshop-erp-test",
		Insecure:          true,
	}, zap.NewNop())
	require.NoError(t, err)
	require.True(t, provider.IsEnabled())

	core, logs := observer.New(zapcore.InfoLevel)
	bridged := provider.Bridge(zap.New(core), zapcore.ErrorLevel)

	// Below the export floor, so nothing is queued for the unreachable collector
	bridged.Info("order started", zap.String("order_number", "PO-0001"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "order started", entry.Message)
	assert.Equal(t, "PO-0001", entry.ContextMap()["order_number"])
	assert.True(t, bridged.Core().Enabled(zapcore.ErrorLevel))

	assert.NoError(t, provider.Shutdown(ctx))
}

func TestLevelFilterCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	filtered := newLevelFilterCore(core, zapcore.WarnLevel)

	assert.False(t, filtered.Enabled(zapcore.InfoLevel))
	assert.True(t, filtered.Enabled(zapcore.WarnLevel))

	logger := zap.New(filtered)
	logger.Info("dropped")
	logger.Warn("kept")
	logger.With(zap.String("mold", "M-01")).Debug("dropped after With")
	logger.With(zap.String("mold", "M-01")).Error("kept after With")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, "kept after With", logs.All()[1].Message)
	assert.Equal(t, "M-01", logs.All()[1].ContextMap()["mold"])
}
