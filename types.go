package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"nerdle/internal/config"
	"nerdle/internal/puzzle"
	"nerdle/internal/session"
	"nerdle/internal/storage"
	"nerdle/internal/task"
	"nerdle/internal/wordlist"
)

// App holds the server's shared state.
type App struct {
	Config  config.Config
	Backend storage.Backend

	Puzzle task.Cell[puzzle.Puzzle]       // set by the puzzle loader
	Words  task.Cell[*wordlist.Wordlist] // set by the wordlist loader

	Devices     map[string]*DeviceSession
	DeviceMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	StartTime time.Time
}

// DeviceSession is the live controller of one browser.
type DeviceSession struct {
	Controller     *session.Controller
	LastAccessTime time.Time
}

func newApp(cfg config.Config, backend storage.Backend) *App {
	return &App{
		Config:     cfg,
		Backend:    backend,
		Devices:    make(map[string]*DeviceSession),
		LimiterMap: make(map[string]*rate.Limiter),
		StartTime:  time.Now(),
	}
}
