package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/newsly/config"
	_ "github.com/daniilsolovey/newsly/docs"
	"github.com/daniilsolovey/newsly/internal/app"
)

var (
	flConfig = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug  = flag.Bool("debug", false, "enable debug mode")
	flAPIKey = flag.String("newsapi-key", "", "NewsAPI key, overrides NewsAPI.APIKey")
	lg       *slog.Logger
)

// @title Newsly API
// @version 1.0
// @description Top headlines by category, proxied from NewsAPI.
// @host localhost:3000
// @BasePath /

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	flag.Parse()

	lg = newLogger(*flDebug)

	cfg, err := config.Load(*flConfig)
	exitOnError(err)

	if *flAPIKey != "" {
		cfg.NewsAPI.APIKey = *flAPIKey
	}
	exitOnError(cfg.Validate())

	service, err := app.New(cfg, lg)
	exitOnError(err)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx, cfg.App.Port)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
