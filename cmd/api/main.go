package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/atlas/app"
	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/deps"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/internal/security"
	"github.com/joefazee/atlas/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/joefazee/atlas/docs"
)

// @title Atlas API
// @version 1.0
// @description Browse the countries of the world: search by name and page through the results.
// @x-logo {"url": "https://go.dev/images/go-logo-white.svg", "altText": "Go API Logo"}

// @contact.name API Support Team

// @license.name MIT License
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
// @description Session token returned on the first request. Browsers use the atlas_session cookie instead.

// @servers.url http://localhost:8080/
// @servers.description Local Development Server
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		logger.NewZeroLogger(os.Stderr, logger.LevelInfo, nil).Fatal(err, map[string]interface{}{
			"op": "load_config",
		})
	}

	log := newLogger(cfg)
	if err := run(cfg, log); err != nil {
		log.Fatal(err, nil)
	}
}

// run owns every resource of the server, so its defers finish before main
// decides how to exit.
func run(cfg *app.Config, log logger.Logger) error {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sessions, err := cache.New[models.SearchState](&cfg.Cache)
	if err != nil {
		return fmt.Errorf("create session cache: %w", err)
	}
	defer sessions.Close()

	if pinger, ok := sessions.(interface{ Ping(context.Context) error }); ok {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := pinger.Ping(pingCtx); err != nil {
			log.Warn("session cache unreachable, sessions will reset", map[string]interface{}{
				"backend": cfg.Cache.Backend,
				"error":   err.Error(),
			})
		}
		cancel()
	}

	tokenMaker, err := security.NewPasetoMaker(cfg.Session.SymmetricKey)
	if err != nil {
		return fmt.Errorf("create token maker: %w", err)
	}

	container := deps.NewContainer(
		&http.Client{Timeout: cfg.Countries.FetchTimeout},
		tokenMaker,
		sanitizer.NewHTMLStripper(),
		log,
		sessions,
		registry,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := app.NewServer(ctx, cfg, container, registry)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	defer server.Close()

	server.Loader.Reload(ctx)

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	listenErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		close(listenErr)
	}()

	log.Info("Starting Atlas server", map[string]interface{}{
		"addr": srv.Addr,
		"env":  cfg.Env,
	})

	select {
	case err := <-listenErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	log.Info("Server shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, map[string]interface{}{"op": "shutdown"})
	}

	log.Info("Server exited properly", nil)
	return nil
}

func newLogger(cfg *app.Config) logger.Logger {
	level := logger.ParseLevel(cfg.LogLevel)
	fields := logger.Fields{"app": "atlas", "env": cfg.Env}
	if cfg.IsDevelopment() {
		return logger.NewConsoleLogger(os.Stdout, level, fields)
	}
	return logger.NewZeroLogger(os.Stdout, level, fields)
}
