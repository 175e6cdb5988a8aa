package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nerdle/internal/logging"
	"nerdle/internal/session"
	"nerdle/internal/storage"
)

// getOrCreateDevice retrieves the device ID from the cookie or issues a new one.
func (app *App) getOrCreateDevice(c *gin.Context) string {
	deviceID, err := c.Cookie(DeviceCookieName)
	if err == nil {
		if _, perr := uuid.Parse(deviceID); perr == nil {
			return deviceID
		}
	}
	deviceID = uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(DeviceCookieName, deviceID, int(app.Config.CookieMaxAge.Seconds()), "/", "", app.Config.IsProduction(), true)
	logging.InfoCtx(c.Request.Context(), "Created new device: %s", deviceID)
	return deviceID
}

// controllerFor returns the live controller of a device, creating it on first
// use and binding it to the current puzzle. ok is false while the dictionary
// is still loading.
func (app *App) controllerFor(ctx context.Context, deviceID string) (ctrl *session.Controller, ok bool, err error) {
	words, ready := app.Words.Get()
	if !ready {
		return nil, false, nil
	}

	now := time.Now()
	app.DeviceMutex.Lock()
	entry, exists := app.Devices[deviceID]
	if !exists {
		games := storage.NewGames(app.Backend.Scope(deviceID))
		entry = &DeviceSession{Controller: session.New(games, words)}
		app.Devices[deviceID] = entry
		logging.InfoCtx(ctx, "Opened controller for device: %s", deviceID)
	}
	entry.LastAccessTime = now
	app.DeviceMutex.Unlock()

	if p, ready := app.Puzzle.Get(); ready {
		if _, err := entry.Controller.Sync(ctx, p); err != nil {
			return entry.Controller, true, err
		}
	}
	return entry.Controller, true, nil
}

// activeDevices returns the number of cached controllers.
func (app *App) activeDevices() int {
	app.DeviceMutex.RLock()
	defer app.DeviceMutex.RUnlock()
	return len(app.Devices)
}

// cleanupIdleDevices drops controllers not used within maxIdle. Their games
// stay in the store and are restored on the next visit.
func (app *App) cleanupIdleDevices(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	app.DeviceMutex.Lock()
	defer app.DeviceMutex.Unlock()
	removed := 0
	for id, entry := range app.Devices {
		if entry.LastAccessTime.Before(cutoff) {
			delete(app.Devices, id)
			removed++
		}
	}
	return removed
}

// runDeviceJanitor evicts idle controllers until ctx is done.
func (app *App) runDeviceJanitor(ctx context.Context) {
	maxIdle := app.Config.SessionIdleTimeout
	if maxIdle <= 0 {
		return
	}
	interval := maxIdle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.cleanupIdleDevices(maxIdle); n > 0 {
				logging.Info("Evicted %d idle device controller%s", n, plural(n))
			}
		}
	}
}
