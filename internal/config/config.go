// Package config loads StartOptions defaults and overrides for a graph
// store instance, layering environment variables and an optional YAML
// file through viper, the same way the teacher's project config loader
// layers settings before a store ever opens.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StartOptions mirrors the configuration table in spec.md §6.
type StartOptions struct {
	Name       string
	Adapter    string
	Compressed bool

	CacheMaxSize     int
	CacheTTL         time.Duration
	PathCacheMaxSize int
	PathCacheTTL     time.Duration
	BFSTimeout       time.Duration
	AdaptiveMedium   int
	AdaptiveLarge    int
	MaxConcurrency   int
}

// Defaults returns the spec-mandated default StartOptions for the given
// store name.
func Defaults(name string) StartOptions {
	return StartOptions{
		Name:             name,
		Adapter:          "memory",
		Compressed:       false,
		CacheMaxSize:     10_000,
		CacheTTL:         60 * time.Second,
		PathCacheMaxSize: 1_000,
		PathCacheTTL:     300 * time.Second,
		BFSTimeout:       5 * time.Second,
		AdaptiveMedium:   1_000,
		AdaptiveLarge:    10_000,
		MaxConcurrency:   8,
	}
}

// Load builds StartOptions for name, starting from Defaults and layering
// GRAPHSTORE_* environment variables and, if present, a YAML file at
// configPath. An empty configPath skips the file layer; any environment
// variable wins over defaults but loses to a caller-supplied explicit
// option (applied by the caller after Load returns).
func Load(name, configPath string) (StartOptions, error) {
	opts := Defaults(name)

	v := viper.New()
	v.SetEnvPrefix("GRAPHSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("cache.max_size", opts.CacheMaxSize)
	v.SetDefault("cache.ttl_ms", opts.CacheTTL.Milliseconds())
	v.SetDefault("path_cache.max_size", opts.PathCacheMaxSize)
	v.SetDefault("path_cache.ttl_ms", opts.PathCacheTTL.Milliseconds())
	v.SetDefault("bfs.timeout_ms", opts.BFSTimeout.Milliseconds())
	v.SetDefault("adaptive.medium_threshold", opts.AdaptiveMedium)
	v.SetDefault("adaptive.large_threshold", opts.AdaptiveLarge)
	v.SetDefault("parallel.max_concurrency", opts.MaxConcurrency)
	v.SetDefault("compressed", opts.Compressed)
	v.SetDefault("adapter", opts.Adapter)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return opts, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	opts.Adapter = v.GetString("adapter")
	opts.Compressed = v.GetBool("compressed")
	opts.CacheMaxSize = v.GetInt("cache.max_size")
	opts.CacheTTL = time.Duration(v.GetInt64("cache.ttl_ms")) * time.Millisecond
	opts.PathCacheMaxSize = v.GetInt("path_cache.max_size")
	opts.PathCacheTTL = time.Duration(v.GetInt64("path_cache.ttl_ms")) * time.Millisecond
	opts.BFSTimeout = time.Duration(v.GetInt64("bfs.timeout_ms")) * time.Millisecond
	opts.AdaptiveMedium = v.GetInt("adaptive.medium_threshold")
	opts.AdaptiveLarge = v.GetInt("adaptive.large_threshold")
	opts.MaxConcurrency = v.GetInt("parallel.max_concurrency")

	return opts, nil
}
