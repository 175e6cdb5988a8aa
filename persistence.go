package main

import (
	"fmt"

	"nerdle/internal/config"
	"nerdle/internal/logging"
	"nerdle/internal/storage"
)

// openBackend selects the game store named by STORAGE_DRIVER.
func openBackend(cfg config.Config) (storage.Backend, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logging.Warn("Using in-memory storage; games are lost on restart")
		return storage.NewMemory(), nil
	case config.DriverSQLite:
		logging.Info("Using SQLite storage at %s", cfg.SQLitePath)
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverFile:
		logging.Info("Using file storage under %s", cfg.DataDir)
		return storage.NewFS(cfg.DataDir), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
