// Package cli implements nerdlectl, an offline inspector for the games a
// server has stored per device.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nerdle/internal/config"
	"nerdle/internal/storage"
)

// Options are the flags shared by every subcommand.
type Options struct {
	Driver     string
	DataDir    string
	SQLitePath string
	Device     string
	Name       string
}

// RootCmd builds the nerdlectl command tree. Flag defaults come from cfg.
func RootCmd(cfg config.Config) *cobra.Command {
	opts := &Options{
		Driver:     cfg.StorageDriver,
		DataDir:    cfg.DataDir,
		SQLitePath: cfg.SQLitePath,
		Name:       cfg.GameName,
	}

	root := &cobra.Command{
		Use:           "nerdlectl",
		Short:         "Inspect stored Nerdle games",
		Long:          "nerdlectl reads the games a Nerdle server stored for one device and prints them, their statistics or their share text.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.Driver, "driver", opts.Driver, "storage driver (file or sqlite)")
	flags.StringVar(&opts.DataDir, "data-dir", opts.DataDir, "directory of the file driver")
	flags.StringVar(&opts.SQLitePath, "sqlite-path", opts.SQLitePath, "database of the sqlite driver")
	flags.StringVar(&opts.Device, "device", "", "device id (the device_id cookie)")
	flags.StringVar(&opts.Name, "name", opts.Name, "game name used in share text")
	_ = root.MarkPersistentFlagRequired("device")

	root.AddCommand(listCmd(opts))
	root.AddCommand(showCmd(opts))
	root.AddCommand(statsCmd(opts))
	root.AddCommand(shareCmd(opts))
	return root
}

// open returns the game repository of the selected device and a function
// releasing the backend.
func (o *Options) open() (*storage.Games, func(), error) {
	var backend storage.Backend
	switch o.Driver {
	case config.DriverFile:
		backend = storage.NewFS(o.DataDir)
	case config.DriverSQLite:
		db, err := storage.OpenSQLite(o.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		backend = db
	default:
		return nil, nil, fmt.Errorf("driver %q cannot be inspected offline (want file or sqlite)", o.Driver)
	}
	closeFn := func() { _ = backend.Close() }
	return storage.NewGames(backend.Scope(o.Device)), closeFn, nil
}

func parseID(arg string) (uint32, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid game id %q", arg)
	}
	return uint32(id), nil
}
