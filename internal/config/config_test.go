package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TASKS_API_URL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Client.BaseURL != DefaultDevelopmentAPIURL {
		t.Fatalf("expected development base url, got %q", cfg.Client.BaseURL)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Fatalf("expected sqlite default, got %q", cfg.Storage.Driver)
	}
	if cfg.Address() != "0.0.0.0:8000" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
}

func TestBaseURLResolution(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("APP_ENV", "production")
	t.Setenv("TASKS_API_URL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Client.BaseURL != DefaultProductionAPIURL {
		t.Fatalf("expected production default, got %q", cfg.Client.BaseURL)
	}

	t.Setenv("TASKS_API_URL", "http://tasks.internal:9000/")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Client.BaseURL != "http://tasks.internal:9000" {
		t.Fatalf("override should win and lose its trailing slash, got %q", cfg.Client.BaseURL)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORAGE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown storage driver")
	}
}

func TestGetDurationAcceptsSeconds(t *testing.T) {
	t.Setenv("CLIENT_TIMEOUT", "7")
	if got := getDuration("CLIENT_TIMEOUT", time.Second); got != 7*time.Second {
		t.Fatalf("expected 7s, got %v", got)
	}
	t.Setenv("CLIENT_TIMEOUT", "250ms")
	if got := getDuration("CLIENT_TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", got)
	}
}

func TestGetList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	got := getList("CORS_ALLOWED_ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", got)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
