package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/newsly/config"
	"github.com/daniilsolovey/newsly/internal/headlines"
	"github.com/daniilsolovey/newsly/internal/newsapi"
	"github.com/daniilsolovey/newsly/internal/rest"
	"github.com/daniilsolovey/newsly/internal/rpc"
	"github.com/daniilsolovey/newsly/internal/session"
	"github.com/daniilsolovey/newsly/internal/view"
)

const rpcPath = "/rpc"

type App struct {
	Logger   *slog.Logger
	Echo     *echo.Echo
	RPC      *zenrpc.Server
	Sessions *session.Manager
	Config   config.Config

	stopOnce sync.Once
	stop     chan struct{}
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	client, err := newsapi.NewClient(cfg.NewsAPIConfig(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi client: %w", err)
	}

	renderer, err := view.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	sessions := session.NewManager(client, headlines.Options{
		DiscardStale: cfg.Headlines.DiscardStale,
	}, cfg.Session.IdleTimeout, logger)

	handler := rest.NewNewsHandler(client, sessions, renderer, rest.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
	}, logger)

	rpcServer := rpc.New(logger, client)
	e := handler.RegisterRoutes()
	e.Any(rpcPath, echo.WrapHandler(rpcServer))

	return &App{
		Logger:   logger,
		Echo:     e,
		RPC:      rpcServer,
		Sessions: sessions,
		Config:   cfg,
		stop:     make(chan struct{}),
	}, nil
}

// Run serves HTTP on port until GracefulShutdown is called.
func (a *App) Run(ctx context.Context, port int) error {
	go a.reapSessions(ctx, a.Config.Session.ReapInterval)

	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, port)
	a.Logger.Info("http server starting", "addr", addr)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	a.stopOnce.Do(func() { close(a.stop) })

	err := a.Echo.Shutdown(ctx)
	a.Sessions.Close()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) reapSessions(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stop:
			return
		case now := <-ticker.C:
			if n := a.Sessions.Reap(now); n > 0 {
				a.Logger.Debug("idle sessions reaped", "count", n, "active", a.Sessions.Len())
			}
		}
	}
}
