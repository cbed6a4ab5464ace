package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/garment-palette-mcp/internal/extract"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	want := Config{LogLevel: "info", Algorithm: extract.AlgorithmEnhanced, WorkingWidth: 200, CacheEntries: 64}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default should validate: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAlgorithm, "LEGACY")
	t.Setenv(EnvWorkingWidth, "320")
	t.Setenv(EnvCacheEntries, " 8 ")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	want := Config{LogLevel: "debug", Algorithm: extract.AlgorithmLegacy, WorkingWidth: 320, CacheEntries: 8}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("FromEnv mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnv_Empty(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvWorkingWidth, "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty variables should keep defaults (-want +got):\n%s", diff)
	}
}

func TestFromEnv_Malformed(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvWorkingWidth, "wide"},
		{EnvCacheEntries, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("FromEnv should fail for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"empty algorithm selects enhanced", func(c *Config) { c.Algorithm = "" }, false},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "kmeans" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"width too small", func(c *Config) { c.WorkingWidth = 8 }, true},
		{"width too large", func(c *Config) { c.WorkingWidth = 5000 }, true},
		{"no cache", func(c *Config) { c.CacheEntries = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownAlgorithmSentinel(t *testing.T) {
	cfg := Default()
	cfg.Algorithm = "median-cut"
	if err := cfg.Validate(); !errors.Is(err, extract.ErrUnknownAlgorithm) {
		t.Errorf("Validate() = %v, want ErrUnknownAlgorithm", err)
	}
}
