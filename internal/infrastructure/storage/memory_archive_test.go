package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryArchive_PutAndGet(t *testing.T) {
	a := NewMemoryArchive("reports")
	ctx := context.Background()

	data := []byte("workbook")
	key, err := a.Put(ctx, "summary-2026-03.xlsx", data, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "reports/summary-2026-03.xlsx", key)

	data[0] = 'W'
	got, contentType, ok := a.Get(key)
	require.True(t, ok)
	assert.Equal(t, "workbook", string(got))
	assert.Equal(t, "application/octet-stream", contentType)
}

func TestMemoryArchive_DownloadURL(t *testing.T) {
	a := NewMemoryArchive("")
	ctx := context.Background()

	t.Run("stored key", func(t *testing.T) {
		key, err := a.Put(ctx, "file.xlsx", []byte("x"), "")
		require.NoError(t, err)
		url, expiresAt, err := a.DownloadURL(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "memory://archive/file.xlsx", url)
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("unknown key", func(t *testing.T) {
		_, _, err := a.DownloadURL(ctx, "missing.xlsx")
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := a.Put(ctx, "", nil, "")
		assert.Error(t, err)
	})
}
