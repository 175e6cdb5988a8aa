package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nerdle/internal/game"
	"nerdle/internal/history"
	"nerdle/internal/logging"
	"nerdle/internal/session"
)

// boardView is everything the page and fragment templates render.
type boardView struct {
	Title     string
	GameName  string
	Ready     bool
	Game      game.Game
	Stats     history.Stats
	ShowStats bool
	Share     string
	Error     string
}

func (app *App) view(g game.Game, stats history.Stats, errMsg string) boardView {
	v := boardView{
		Title:     app.Config.GameName,
		GameName:  app.Config.GameName,
		Ready:     true,
		Game:      g,
		Stats:     stats,
		ShowStats: g.State.Terminal(),
		Error:     errMsg,
	}
	if v.ShowStats {
		v.Share = g.ShareText(app.Config.GameName)
	}
	return v
}

// rejectionMessage turns a rejected action into the text shown to the player.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrGameOver):
		return ErrorGameOver
	case errors.Is(err, session.ErrNoPuzzle):
		return ErrorNoPuzzle
	case errors.Is(err, session.ErrGuessTooLong):
		return ErrorGuessTooLong
	case errors.Is(err, session.ErrIncompleteGuess):
		return ErrorIncompleteGuess
	case errors.Is(err, session.ErrNotInWordList):
		return ErrorNotInWordList
	case errors.Is(err, session.ErrUnknownKey):
		return ErrorUnknownKey
	default:
		return ErrorNotAccepted
	}
}

// controller resolves the device's controller or writes the response itself
// and returns nil.
func (app *App) controller(c *gin.Context) *session.Controller {
	ctx := c.Request.Context()
	deviceID := app.getOrCreateDevice(c)
	ctrl, ok, err := app.controllerFor(ctx, deviceID)
	if !ok {
		app.renderLoading(c)
		return nil
	}
	if err != nil {
		logging.ErrorCtx(ctx, "Failed to bind device %s to puzzle: %v", deviceID, err)
		app.renderStoreError(c)
		return nil
	}
	return ctrl
}

func (app *App) renderLoading(c *gin.Context) {
	if c.Request.Method == http.MethodGet && c.FullPath() == RouteHome {
		c.HTML(http.StatusOK, "index.html", boardView{
			Title:    app.Config.GameName,
			GameName: app.Config.GameName,
			Error:    ErrorLoadingWords,
		})
		return
	}
	c.Header("Retry-After", "1")
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrorLoadingWords})
}

func (app *App) renderStoreError(c *gin.Context) {
	if isHTMX(c) {
		setTrigger(c, "server_error", ErrorStorage)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorStorage})
}

func setTrigger(c *gin.Context, event, msg string) {
	b, err := json.Marshal(map[string]string{event: msg})
	if err != nil {
		logging.WarnCtx(c.Request.Context(), "Failed to marshal HX-Trigger payload: %v", err)
		return
	}
	c.Header("HX-Trigger", string(b))
}

// renderBoard answers a board request with a fragment for htmx and the full
// page otherwise. A rejected action is reported through HX-Trigger and the
// unchanged board.
func (app *App) renderBoard(c *gin.Context, ctrl *session.Controller, g game.Game, actionErr error) {
	ctx := c.Request.Context()
	var errMsg string
	if actionErr != nil {
		if !errors.Is(actionErr, session.ErrRejected) {
			logging.ErrorCtx(ctx, "Failed to persist game %d: %v", g.ID, actionErr)
			app.renderStoreError(c)
			return
		}
		errMsg = rejectionMessage(actionErr)
		setTrigger(c, TriggerNotAccepted, errMsg)
	}

	if isHTMX(c) {
		c.HTML(http.StatusOK, "game-content", app.view(g, finishedStats(c, ctrl, g), errMsg))
		return
	}
	c.HTML(http.StatusOK, "index.html", app.view(g, finishedStats(c, ctrl, g), errMsg))
}

// finishedStats loads the statistics shown once g is over.
func finishedStats(c *gin.Context, ctrl *session.Controller, g game.Game) history.Stats {
	if !g.State.Terminal() {
		return history.Stats{}
	}
	stats, err := ctrl.History(c.Request.Context())
	if err != nil {
		logging.WarnCtx(c.Request.Context(), "Failed to load history: %v", err)
	}
	return stats
}

// homeHandler renders the main game page for the current device.
func (app *App) homeHandler(c *gin.Context) {
	ctrl := app.controller(c)
	if ctrl == nil {
		return
	}
	app.renderBoard(c, ctrl, ctrl.Game(), nil)
}

// keyHandler applies one on-screen or physical key press.
func (app *App) keyHandler(c *gin.Context) {
	ctrl := app.controller(c)
	if ctrl == nil {
		return
	}
	g, err := ctrl.Input(c.Request.Context(), c.PostForm("key"))
	app.renderBoard(c, ctrl, g, err)
}

// guessHandler submits a whole word at once.
func (app *App) guessHandler(c *gin.Context) {
	ctrl := app.controller(c)
	if ctrl == nil {
		return
	}
	g, err := ctrl.Submit(c.Request.Context(), c.PostForm("guess"))
	if err == nil {
		logging.InfoCtx(c.Request.Context(), "Game %d: guess %d/%d, state %s", g.ID, g.Tries(), game.MaxTries, g.State)
	}
	app.renderBoard(c, ctrl, g, err)
}

// gameStateHandler renders the current game board as an HTML fragment.
func (app *App) gameStateHandler(c *gin.Context) {
	ctrl := app.controller(c)
	if ctrl == nil {
		return
	}
	g := ctrl.Game()
	c.HTML(http.StatusOK, "game-content", app.view(g, finishedStats(c, ctrl, g), ""))
}

// gameJSONHandler returns the live game as stored.
func (app *App) gameJSONHandler(c *gin.Context) {
	ctrl := app.controller(c)
	if ctrl == nil {
		return
	}
	c.JSON(http.StatusOK, ctrl.Game())
}

// statsHandler returns the statistics over every stored game of the device.
func (app *App) statsHandler(c *gin.Context) {
	ctrl := app.controller(c)
	if ctrl == nil {
		return
	}
	stats, err := ctrl.History(c.Request.Context())
	if err != nil {
		logging.ErrorCtx(c.Request.Context(), "Failed to load history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// shareHandler returns the emoji summary of a finished game.
func (app *App) shareHandler(c *gin.Context) {
	ctrl := app.controller(c)
	if ctrl == nil {
		return
	}
	g := ctrl.Game()
	if !g.State.Terminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "game is still running"})
		return
	}
	c.String(http.StatusOK, g.ShareText(app.Config.GameName))
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	words, _ := app.Words.Get()
	p, puzzleReady := app.Puzzle.Get()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"env":            envName(app.Config.IsProduction()),
		"storage":        app.Config.StorageDriver,
		"words_loaded":   words.Len(),
		"puzzle_ready":   puzzleReady,
		"puzzle_id":      p.ID,
		"active_devices": app.activeDevices(),
		"uptime":         formatUptime(time.Since(app.StartTime)),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
