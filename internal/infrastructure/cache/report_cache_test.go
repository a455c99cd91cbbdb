package cache

import (
	"context"
	"testing"
	"time"

	"github.com/moldshop/erp/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sample struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func TestInMemoryReportCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryReportCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	var got sample
	found, err := c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "dashboard", sample{Count: 3, Total: decimal.RequireFromString("35.50")}))
	found, err = c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "35.5", got.Total.String())
	assert.ElementsMatch(t, []string{"dashboard"}, c.Keys())

	now = now.Add(time.Minute)
	found, err = c.Get(ctx, "dashboard", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryReportCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryReportCache(time.Minute)
	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))

	require.NoError(t, c.Invalidate(ctx))
	var v int
	found, err := c.Get(ctx, "a", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, c.Keys())
}

func TestInMemoryReportCache_ZeroTTLDisables(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryReportCache(0)
	require.NoError(t, c.Set(ctx, "a", 1))
	var v int
	found, err := c.Get(ctx, "a", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewBackend_FallsBackWithoutRedis(t *testing.T) {
	b := NewBackend(context.Background(), config.RedisConfig{Enabled: false, ReportTTL: time.Minute}, zap.NewNop())
	assert.Nil(t, b.Client)
	assert.IsType(t, &InMemoryReportCache{}, b.Report)
	assert.NoError(t, b.Close())
}

func TestNewBackend_UnreachableRedis(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1, ReportTTL: time.Minute}
	b := NewBackend(context.Background(), cfg, zap.NewNop())
	assert.Nil(t, b.Client)
	assert.IsType(t, &InMemoryReportCache{}, b.Report)
}
