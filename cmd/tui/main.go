package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joefazee/atlas/app"
	"github.com/joefazee/atlas/app/countries"
	"github.com/joefazee/atlas/app/terminal"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/resilience/circuitbreaker"
)

const logFile = "atlas-tui.log"

func main() {
	stderr := logger.NewZeroLogger(os.Stderr, logger.LevelInfo, nil)

	cfg, err := app.LoadConfig()
	if err != nil {
		stderr.Fatal(err, map[string]interface{}{"op": "load_config"})
	}

	if err := run(cfg); err != nil {
		stderr.Fatal(err, nil)
	}
}

func run(cfg *app.Config) error {
	// the terminal belongs to the UI, so logs go to a file when asked for
	var log logger.Logger = logger.NewNullLogger()
	if logger.ParseLevel(cfg.LogLevel) == logger.LevelDebug {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log = logger.NewZeroLogger(f, logger.LevelDebug, logger.Fields{"app": "atlas-tui"})
	}

	breaker := circuitbreaker.New(circuitbreaker.CountriesSourceConfig(), log)
	repo := countries.NewRepository(&http.Client{Timeout: cfg.Countries.FetchTimeout}, &cfg.Countries, breaker, log, nil)
	loader := countries.NewLoader(repo, &cfg.Countries, log, nil)
	loader.Reload(context.Background())

	if err := terminal.Run(loader, &cfg.Countries); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	return nil
}
