package rest

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/newsly/internal/headlines"
	"github.com/daniilsolovey/newsly/internal/view"
)

const (
	articlesEvent = "articles"
	keepAlive     = 15 * time.Second
)

// Events handles GET /events: a server-sent event stream that carries the
// re-rendered article list after every change of the session's store.
func (h *NewsHandler) Events(c echo.Context) error {
	s := h.session(c)

	updates := make(chan headlines.Snapshot, 1)
	unsubscribe := s.Store.Subscribe(func(snap headlines.Snapshot) {
		// Only the newest snapshot matters to a slow reader.
		select {
		case <-updates:
		default:
		}
		updates <- snap
	})
	defer unsubscribe()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := h.writeArticles(w, s.Store.Snapshot()); err != nil {
		h.log.Debug("event stream closed", "session", s.ID, "error", err)
		return nil
	}

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-updates:
			if err := h.writeArticles(w, snap); err != nil {
				h.log.Debug("event stream closed", "session", s.ID, "error", err)
				return nil
			}
		case <-ticker.C:
			h.sessions.Touch(s.ID)
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func (h *NewsHandler) writeArticles(w *echo.Response, snap headlines.Snapshot) error {
	fragment, err := h.renderer.RenderArticles(view.NewPage(snap))
	if err != nil {
		return fmt.Errorf("render articles: %w", err)
	}

	if err := writeEvent(w, articlesEvent, fragment); err != nil {
		return err
	}
	w.Flush()
	return nil
}

func writeEvent(w io.Writer, event, data string) error {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteByte('\n')
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
