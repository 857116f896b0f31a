package kv

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis connects to the server named by EDGEUI_TEST_REDIS_URL.
func setupTestRedis(t *testing.T) *Redis {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	url := os.Getenv("EDGEUI_TEST_REDIS_URL")
	if url == "" {
		t.Skip("EDGEUI_TEST_REDIS_URL not set")
	}

	r, err := NewRedis(url)
	require.NoError(t, err)
	require.NoError(t, r.Ping(context.Background()))

	r.prefix = "edgeui-test:" + t.Name() + ":"
	t.Cleanup(func() {
		_ = r.Delete(context.Background(), "token")
		_ = r.Close()
	})
	return r
}

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis("not a url")
	assert.Error(t, err)
}

func TestRedis_SetGetDelete(t *testing.T) {
	r := setupTestRedis(t)
	ctx := context.Background()

	_, ok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, "token", "abc123", SetOptions{}))
	v, ok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", v)

	require.NoError(t, r.Delete(ctx, "token"))
	require.NoError(t, r.Delete(ctx, "token"))
	_, ok, err = r.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_TTL(t *testing.T) {
	r := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", "short", SetOptions{TTL: time.Second}))
	assert.Eventually(t, func() bool {
		_, ok, err := r.Get(ctx, "token")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedis_UnreachableServer(t *testing.T) {
	r, err := NewRedis("redis://127.0.0.1:1/0")
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, _, err = r.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrUnavailable)
}
