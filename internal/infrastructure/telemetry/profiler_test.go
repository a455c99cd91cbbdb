package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/moldshop/erp/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	profiler, err := NewProfiler(config.TelemetryConfig{ProfilingEnabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, profiler.IsEnabled())

	assert.NoError(t, profiler.Stop())
	assert.NoError(t, profiler.Stop())
}

func TestNewProfiler_RequiresServerAddress(t *testing.T) {
	profiler, err := NewProfiler(config.TelemetryConfig{
		ProfilingEnabled: true,
		ServiceName:      "moldshop-erp",
	}, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, profiler)
	assert.Contains(t, err.Error(), "profiling_server_address")
}

func TestSanitizeLabels(t *testing.T) {
	assert.Nil(t, sanitizeLabels(nil))

	pairs := sanitizeLabels(map[string]string{
		"Route":      "/api/v1/molds/:id",
		"method":     "GET",
		"user_id":    "4f7c",
		"request-id": "abc",
		"role":       "",
		"resource":   strings.Repeat("x", MaxLabelValueLength+10),
	})
	assert.Equal(t, []string{
		"method", "GET",
		"resource", strings.Repeat("x", MaxLabelValueLength),
		"route", "/api/v1/molds/:id",
	}, pairs)
}

func TestSanitizeLabelKey(t *testing.T) {
	assert.Equal(t, "work_center", sanitizeLabelKey("Work Center"))
	assert.Equal(t, "order_id", sanitizeLabelKey("order-id"))
	assert.Equal(t, "", sanitizeLabelKey("!!"))
}

func TestWithProfilingLabels(t *testing.T) {
	var route, userID string
	var called bool
	WithProfilingLabels(context.Background(), map[string]string{
		ProfilingLabelRoute: "/api/v1/molds/:id",
		"user_id":           "4f7c",
	}, func(ctx context.Context) {
		called = true
		route, _ = pprof.Label(ctx, ProfilingLabelRoute)
		userID, _ = pprof.Label(ctx, "user_id")
	})

	require.True(t, called)
	assert.Equal(t, "/api/v1/molds/:id", route)
	assert.Empty(t, userID)

	called = false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}
