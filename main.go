package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"nerdle/internal/config"
	"nerdle/internal/logging"
	"nerdle/internal/puzzle"
	"nerdle/internal/task"
	"nerdle/internal/wordlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid configuration: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logging.Info("Starting %s in %s mode", cfg.GameName, envName(cfg.IsProduction()))

	backend, err := openBackend(cfg)
	if err != nil {
		logging.Fatal("Failed to open storage: %v", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logging.Warn("Failed to close storage: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newApp(cfg, backend)
	app.startLoaders(ctx)
	go app.runDeviceJanitor(ctx)

	router := app.setupRouter()
	app.startServer(ctx, router)
}

// startLoaders fetches the dictionary and today's puzzle in the background.
// Requests arriving before they finish see the loading placeholder.
func (app *App) startLoaders(ctx context.Context) {
	task.Spawn("wordlist", func() error {
		fctx, cancel := app.fetchContext(ctx)
		defer cancel()
		words, err := wordlist.Load(fctx, app.Config.WordlistSource)
		if err != nil {
			return err
		}
		app.Words.Set(words)
		logging.Info("Loaded %d words from %s", words.Len(), app.Config.WordlistSource)
		return nil
	})
	task.Spawn("puzzle", func() error {
		return app.refreshPuzzle(ctx, time.Now())
	})

	if interval := app.Config.PuzzleRefreshInterval; interval > 0 {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					if err := app.refreshPuzzle(ctx, now); err != nil {
						logging.Warn("Puzzle refresh failed: %v", err)
					}
				}
			}
		}()
	}
}

// refreshPuzzle loads the puzzle for date and publishes it when it differs
// from the current one. Controllers pick it up on their next request.
func (app *App) refreshPuzzle(ctx context.Context, date time.Time) error {
	fctx, cancel := app.fetchContext(ctx)
	defer cancel()
	p, err := puzzle.Load(fctx, app.Config.PuzzleSource, date)
	if err != nil {
		return err
	}
	if current, ok := app.Puzzle.Get(); ok && current == p {
		return nil
	}
	app.Puzzle.Set(p)
	logging.Info("Loaded puzzle %d for %s", p.ID, p.PrintDate)
	return nil
}

func (app *App) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if app.Config.FetchTimeout > 0 {
		return context.WithTimeout(ctx, app.Config.FetchTimeout)
	}
	return context.WithCancel(ctx)
}

var templateFuncs = template.FuncMap{
	"wideKey": func(glyph string) bool { return len(glyph) > 1 },
}

// setupRouter builds the gin engine with all middleware and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), requestIDMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logging.Warn("Failed to set trusted proxies: %v", err)
	}

	production := app.Config.IsProduction()
	router.Use(func(c *gin.Context) {
		app.applyCacheHeaders(c, production)
	})

	router.SetFuncMap(templateFuncs)
	if production && dirExists("dist") {
		logging.Info("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logging.Info("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	limited := app.rateLimitMiddleware()
	router.GET(RouteHome, app.homeHandler)
	router.POST(RouteKey, limited, app.keyHandler)
	router.POST(RouteGuess, limited, app.guessHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.GET(RouteGameJSON, app.gameJSONHandler)
	router.GET(RouteStats, app.statsHandler)
	router.GET(RouteShare, app.shareHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

// startServer serves router until ctx is cancelled, then shuts down gracefully.
func (app *App) startServer(ctx context.Context, router *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + app.Config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logging.Info("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logging.Info("Server starting on http://localhost:%s", app.Config.Port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logging.Info("Server shutdown complete")
}

// applyCacheHeaders lets browsers cache static assets in production and
// nothing else.
func (app *App) applyCacheHeaders(c *gin.Context, production bool) {
	if production && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(app.Config.StaticCacheAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
