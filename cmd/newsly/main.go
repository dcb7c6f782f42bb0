package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/newsly/config"
	"github.com/daniilsolovey/newsly/internal/headlines"
	"github.com/daniilsolovey/newsly/internal/newsapi"
	"github.com/daniilsolovey/newsly/internal/tui"
)

var (
	flConfig  = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug   = flag.Bool("debug", false, "enable debug mode")
	flAPIKey  = flag.String("newsapi-key", "", "NewsAPI key, overrides NewsAPI.APIKey")
	flLogFile = flag.String("log", "newsly.log", "log file; the terminal belongs to the UI")
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
	}
	flag.Parse()

	logFile, err := os.OpenFile(*flLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	exitOnError(err)
	defer logFile.Close()

	lg := newLogger(logFile, *flDebug)

	cfg, err := config.Load(*flConfig)
	exitOnError(err)
	if *flAPIKey != "" {
		cfg.NewsAPI.APIKey = *flAPIKey
	}
	exitOnError(cfg.Validate())

	client, err := newsapi.NewClient(cfg.NewsAPIConfig(), nil)
	exitOnError(err)

	store := headlines.NewStore(client, headlines.Options{
		DiscardStale: cfg.Headlines.DiscardStale,
	}, lg)
	defer store.Close()

	p := tea.NewProgram(tui.New(store, lg), tea.WithAltScreen())
	unsubscribe := tui.Subscribe(store, p)
	defer unsubscribe()

	lg.Info("newsly starting", "country", client.Country())
	if _, err := p.Run(); err != nil {
		lg.Error("terminal ui failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
	}
}

func newLogger(f *os.File, debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "newsly:", err)
		os.Exit(1)
	}
}
