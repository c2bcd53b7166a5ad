package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoints []EndpointConfig) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		CleanupInterval: 0, // No cleanup goroutine in tests
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: endpoints,
	}
}

func TestTokenBucket_Burst(t *testing.T) {
	// 2 burst tokens, very slow refill
	bucket := newTokenBucket(2, 0.001)

	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow(), "burst exhausted")
}

func TestTokenBucket_Refill(t *testing.T) {
	// 1 token capacity, refills 100/sec
	bucket := newTokenBucket(1, 100)

	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, bucket.allow(), "token should have refilled")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("client-1", "/insights", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_EndpointLimit(t *testing.T) {
	endpoints := []EndpointConfig{
		{Path: "/insights", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
	}
	limiter := NewLimiter(testConfig(endpoints))
	defer limiter.Stop()

	allowed, info := limiter.Allow("client-1", "/insights", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 10, info.Limit)

	allowed, _ = limiter.Allow("client-1", "/insights", "POST")
	assert.True(t, allowed)

	// Burst of 2 exhausted
	allowed, info = limiter.Allow("client-1", "/insights", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_PerClientBuckets(t *testing.T) {
	endpoints := []EndpointConfig{
		{Path: "/insights", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	}
	limiter := NewLimiter(testConfig(endpoints))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("client-1", "/insights", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("client-1", "/insights", "POST")
	assert.False(t, allowed)

	// Different client has its own bucket
	allowed, _ = limiter.Allow("client-2", "/insights", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig([]EndpointConfig{
		{Path: "/insights", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
	})
	cfg.Whitelist["10.0.0.1"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/insights", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig(nil)
	cfg.Blacklist["10.0.0.2"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.2", "/health", "POST")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantMatch bool
		wantLimit int
	}{
		{name: "Exact caption match", path: "/captions", method: "POST", wantMatch: true, wantLimit: 30},
		{name: "Exact insight match", path: "/insights", method: "POST", wantMatch: true, wantLimit: 10},
		{name: "Auth prefix match", path: "/auth/register", method: "POST", wantMatch: true, wantLimit: 20},
		{name: "Analyses delete prefix", path: "/analyses/abc-123", method: "DELETE", wantMatch: true, wantLimit: 100},
		{name: "Unmatched read falls through", path: "/analyses", method: "GET", wantMatch: false},
		{name: "Method mismatch", path: "/captions", method: "GET", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.wantMatch {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.wantLimit, match.Limit)
		})
	}
}

func TestMatchEndpoint_HealthUnlimited(t *testing.T) {
	match := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, match)
	assert.Equal(t, 0, match.Limit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Whitelist(t *testing.T) {
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	assert.False(t, cfg.Whitelist["10.0.0.3"])
}
