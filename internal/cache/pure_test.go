package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestHashIP_Deterministic(t *testing.T) {
	t.Parallel()

	ip := "192.168.1.100"

	hash1 := hashIP(ip)
	hash2 := hashIP(ip)

	if hash1 != hash2 {
		t.Error("Same IP should produce same hash")
	}
}

func TestHashIP_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv4 localhost", "127.0.0.1"},
		{"IPv6 localhost", "::1"},
		{"IPv6 full", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash := hashIP(tt.ip)
			// hashIP uses first 8 bytes of SHA256, encoded as 16 hex chars
			if len(hash) != 16 {
				t.Errorf("hashIP(%q) length = %d, want 16", tt.ip, len(hash))
			}
		})
	}
}

func TestHashIP_Different(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip1  string
		ip2  string
	}{
		{"different IPv4", "192.168.1.1", "192.168.1.2"},
		{"different last octet", "10.0.0.1", "10.0.0.2"},
		{"IPv4 vs IPv6", "127.0.0.1", "::1"},
		{"public vs private", "8.8.8.8", "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash1 := hashIP(tt.ip1)
			hash2 := hashIP(tt.ip2)

			if hash1 == hash2 {
				t.Errorf("Different IPs should produce different hashes: %q and %q both produced %s", tt.ip1, tt.ip2, hash1)
			}
		})
	}
}

func TestIPRateLimitKey(t *testing.T) {
	t.Parallel()

	auth := ipRateLimitKey("auth", "10.0.0.1")
	other := ipRateLimitKey("other", "10.0.0.1")

	if !strings.HasPrefix(auth, rateLimitIPPrefix+"auth:") {
		t.Errorf("unexpected key %q", auth)
	}
	if strings.Contains(auth, "10.0.0.1") {
		t.Errorf("key must not contain the raw IP: %q", auth)
	}
	if auth == other {
		t.Error("scopes must not share a bucket")
	}
	if auth != ipRateLimitKey("auth", "10.0.0.1") {
		t.Error("key should be deterministic")
	}
}

func TestApplyPoolDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		url          string
		wantPoolSize int
	}{
		{"defaults", "redis://localhost:6379/0", defaultPoolSize},
		{"url overrides pool size", "redis://localhost:6379/0?pool_size=25", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := redis.ParseURL(tt.url)
			if err != nil {
				t.Fatalf("ParseURL: %v", err)
			}
			applyPoolDefaults(opt)

			if opt.PoolSize != tt.wantPoolSize {
				t.Errorf("PoolSize = %d, want %d", opt.PoolSize, tt.wantPoolSize)
			}
			if opt.MinIdleConns != defaultMinIdleConns {
				t.Errorf("MinIdleConns = %d, want %d", opt.MinIdleConns, defaultMinIdleConns)
			}
			if opt.PoolTimeout != defaultPoolTimeout {
				t.Errorf("PoolTimeout = %v, want %v", opt.PoolTimeout, defaultPoolTimeout)
			}
			if opt.ConnMaxIdleTime != defaultConnMaxIdleTime {
				t.Errorf("ConnMaxIdleTime = %v, want %v", opt.ConnMaxIdleTime, defaultConnMaxIdleTime)
			}
		})
	}
}

func TestNew_RejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), "not-a-redis-url"); err == nil {
		t.Fatal("expected error for malformed URL")
	}
}
