package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != "8080" || cfg.GameName != "Nerdle" || cfg.StorageDriver != DriverFile {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.PuzzleRefreshInterval != 0 || cfg.SessionIdleTimeout != 2*time.Hour {
		t.Errorf("unexpected duration defaults: %+v", cfg)
	}
	if cfg.IsProduction() {
		t.Error("default config should not be production")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("PUZZLE_REFRESH_INTERVAL", "1h")
	t.Setenv("RATE_LIMIT_RPS", "3")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != "9090" || cfg.StorageDriver != DriverSQLite || cfg.RateLimitRPS != 3 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.PuzzleRefreshInterval != time.Hour {
		t.Errorf("PuzzleRefreshInterval = %v", cfg.PuzzleRefreshInterval)
	}
	if !cfg.IsProduction() {
		t.Error("GIN_MODE=release should be production")
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"STORAGE_DRIVER":       "redis",
		"SESSION_IDLE_TIMEOUT": "soon",
		"RATE_LIMIT_BURST":     "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Parse(); err == nil {
				t.Errorf("%s=%s should be rejected", key, value)
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GAME_NAME=Wordish\n"), 0644); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	t.Cleanup(func() { os.Unsetenv("GAME_NAME") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GameName != "Wordish" {
		t.Errorf("GameName = %q, want Wordish", cfg.GameName)
	}
}
