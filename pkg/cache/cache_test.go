package cache_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/callqa/pkg/cache"
	"github.com/JaimeStill/callqa/pkg/lifecycle"
)

type entry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := cache.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
	if cfg.URL != "redis://localhost:6379" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Prefix != "callqa" {
		t.Errorf("Prefix = %q, want callqa", cfg.Prefix)
	}
	if cfg.TTLDuration() != 5*time.Minute {
		t.Errorf("TTL = %v, want 5m", cfg.TTLDuration())
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_CACHE_ENABLED", "true")
	t.Setenv("TEST_CACHE_URL", "redis://cache:6379/2")
	t.Setenv("TEST_CACHE_TTL", "30s")

	cfg := cache.Config{}
	err := cfg.Finalize(&cache.Env{
		Enabled: "TEST_CACHE_ENABLED",
		URL:     "TEST_CACHE_URL",
		TTL:     "TEST_CACHE_TTL",
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled || cfg.URL != "redis://cache:6379/2" || cfg.TTLDuration() != 30*time.Second {
		t.Errorf("got %+v", cfg)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     cache.Config
		wantErr string
	}{
		{"bad ttl", cache.Config{TTL: "soon"}, "invalid ttl"},
		{"zero ttl", cache.Config{TTL: "0s"}, "ttl must be positive"},
		{"bad timeout", cache.Config{ConnTimeout: "x"}, "invalid conn_timeout"},
		{"negative db", cache.Config{DB: -1}, "db must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := cache.Config{Enabled: true, URL: "redis://a:6379", TTL: "5m"}
	base.Merge(&cache.Config{Enabled: false, TTL: "1m"})

	if base.Enabled {
		t.Error("Enabled should follow overlay")
	}
	if base.URL != "redis://a:6379" {
		t.Errorf("URL = %q, want unchanged", base.URL)
	}
	if base.TTL != "1m" {
		t.Errorf("TTL = %q, want 1m", base.TTL)
	}
}

func TestNewDisabledIsNoop(t *testing.T) {
	cfg := cache.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	c, err := cache.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err := c.Set(ctx, cache.Key{Name: "k"}, entry{Name: "a"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got entry
	key, found, err := c.Get(ctx, "k", &got)
	if err != nil || found {
		t.Errorf("Get() = %v, %v, want miss", found, err)
	}
	if key.Name != "k" {
		t.Errorf("Get() key = %+v, want name k", key)
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Errorf("Invalidate() error = %v", err)
	}
}

func TestNewInvalidURL(t *testing.T) {
	cfg := cache.Config{Enabled: true, URL: "not-a-url"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if _, err := cache.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestRedisRoundTripAndInvalidate(t *testing.T) {
	url := os.Getenv("CALLQA_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CALLQA_TEST_REDIS_URL not set")
	}

	cfg := cache.Config{Enabled: true, URL: url, Prefix: "callqa-test-" + t.Name()}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	c, err := cache.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := c.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()
	t.Cleanup(func() { lc.Shutdown(5 * time.Second) })

	ctx := context.Background()
	want := entry{Name: "Clinic A", Score: 4.5}

	var got entry
	key, found, err := c.Get(ctx, "summary", &got)
	if err != nil || found {
		t.Fatalf("Get() = %v, %v, want miss", found, err)
	}
	if err := c.Set(ctx, key, want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, found, err = c.Get(ctx, "summary", &got)
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v, want hit", found, err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	_, found, err = c.Get(ctx, "summary", &got)
	if err != nil || found {
		t.Errorf("Get() after invalidate = %v, %v, want miss", found, err)
	}
}

func TestRedisWriteAfterInvalidateIsOrphaned(t *testing.T) {
	url := os.Getenv("CALLQA_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CALLQA_TEST_REDIS_URL not set")
	}

	cfg := cache.Config{Enabled: true, URL: url, Prefix: "callqa-test-" + t.Name()}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	c, err := cache.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	var got entry

	stale, found, err := c.Get(ctx, "summary", &got)
	if err != nil || found {
		t.Fatalf("Get() = %v, %v, want miss", found, err)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if err := c.Set(ctx, stale, entry{Name: "before update"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	current, found, err := c.Get(ctx, "summary", &got)
	if err != nil || found {
		t.Errorf("Get() after stale write = %v, %v, want miss", found, err)
	}
	if current.Generation != stale.Generation+1 {
		t.Errorf("generation = %d, want %d", current.Generation, stale.Generation+1)
	}
}
