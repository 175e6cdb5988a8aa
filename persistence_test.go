package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"nerdle/internal/config"
	"nerdle/internal/storage"
)

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		driver string
		want   string
	}{
		{config.DriverMemory, "*storage.Memory"},
		{config.DriverFile, "*storage.FS"},
		{config.DriverSQLite, "*storage.SQLite"},
	}
	for _, c := range cases {
		t.Run(c.driver, func(t *testing.T) {
			cfg := testConfig()
			cfg.StorageDriver = c.driver
			cfg.DataDir = filepath.Join(dir, "devices")
			cfg.SQLitePath = filepath.Join(dir, "nerdle.db")

			backend, err := openBackend(cfg)
			if err != nil {
				t.Fatalf("openBackend(%s): %v", c.driver, err)
			}
			defer backend.Close()
			if got := fmt.Sprintf("%T", backend); got != c.want {
				t.Errorf("backend type = %s, want %s", got, c.want)
			}

			ctx := context.Background()
			store := backend.Scope("device-1")
			if err := store.Set(ctx, "game:1", []byte(`{}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if _, err := store.Get(ctx, "game:1"); err != nil {
				t.Fatalf("Get: %v", err)
			}
			if _, err := backend.Scope("device-2").Get(ctx, "game:1"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("other device sees the record: err = %v", err)
			}
		})
	}
}

func TestOpenBackendUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "redis"
	if _, err := openBackend(cfg); err == nil {
		t.Errorf("expected an error for an unknown driver")
	}
}
