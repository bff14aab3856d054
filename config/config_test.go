package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session.Backend != SessionBackendMemory || cfg.Session.TTL != 8*time.Hour {
		t.Errorf("unexpected session defaults %+v", cfg.Session)
	}
	if diff := cmp.Diff([]int{5, 10, 20, 50}, cfg.Table.PageSizes); diff != "" {
		t.Errorf("page sizes mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Form.ContinueOnEndpointError {
		t.Errorf("expected continue_on_endpoint_error default true")
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Errorf("unexpected backend timeout %v", cfg.Backend.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("TABLE_PAGE_SIZES", "3, 6")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("BACKEND_URL", "http://api.internal:9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]int{3, 6}, cfg.Table.PageSizes); diff != "" {
		t.Errorf("page sizes mismatch (-want +got):\n%s", diff)
	}
	if cfg.Session.Backend != SessionBackendRedis || cfg.Backend.BaseURL != "http://api.internal:9000" {
		t.Errorf("env overrides not applied: %+v %+v", cfg.Session, cfg.Backend)
	}
}

func TestLoadRejectsUnknownSessionBackend(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_BACKEND", "cookie")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown session backend")
	}
}

func TestParseInts(t *testing.T) {
	for _, tc := range []struct {
		raw  any
		want []int
	}{
		{[]any{5, "10"}, []int{5, 10}},
		{"1,2,,3", []int{1, 2, 3}},
		{[]int{7}, []int{7}},
	} {
		got, err := parseInts(tc.raw)
		if err != nil {
			t.Fatalf("parseInts(%v): %v", tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("parseInts(%v) mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
	if _, err := parseInts("a,b"); err == nil {
		t.Errorf("expected error for non-numeric sizes")
	}
}
