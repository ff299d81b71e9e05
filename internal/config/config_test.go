package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/config"
)

func TestDefaultsMatchSpec(t *testing.T) {
	opts := config.Defaults("s1")
	assert.Equal(t, "s1", opts.Name)
	assert.Equal(t, "memory", opts.Adapter)
	assert.False(t, opts.Compressed)
	assert.Equal(t, 10_000, opts.CacheMaxSize)
	assert.Equal(t, 60*time.Second, opts.CacheTTL)
	assert.Equal(t, 1_000, opts.PathCacheMaxSize)
	assert.Equal(t, 300*time.Second, opts.PathCacheTTL)
	assert.Equal(t, 5*time.Second, opts.BFSTimeout)
	assert.Equal(t, 1_000, opts.AdaptiveMedium)
	assert.Equal(t, 10_000, opts.AdaptiveLarge)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	opts, err := config.Load("s1", "")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults("s1"), opts)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GRAPHSTORE_CACHE_MAX_SIZE", "42")
	opts, err := config.Load("s1", "")
	require.NoError(t, err)
	assert.Equal(t, 42, opts.CacheMaxSize)
}

func TestLoadYAMLFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "gs-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("cache:\n  max_size: 7\nbfs:\n  timeout_ms: 1234\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	opts, err := config.Load("s1", f.Name())
	require.NoError(t, err)
	assert.Equal(t, 7, opts.CacheMaxSize)
	assert.Equal(t, 1234*time.Millisecond, opts.BFSTimeout)
}
