package rest

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/newsly/internal/domain"
	"github.com/daniilsolovey/newsly/internal/headlines"
	"github.com/daniilsolovey/newsly/internal/newsapi"
	"github.com/daniilsolovey/newsly/internal/session"
	"github.com/daniilsolovey/newsly/internal/view"
)

type CookieConfig struct {
	Name   string
	Secure bool
}

// countryReporter is implemented by fetchers that fill in a default country.
type countryReporter interface {
	Country() string
}

type NewsHandler struct {
	fetcher  headlines.Fetcher
	sessions *session.Manager
	renderer *view.HTMLRenderer
	cookie   CookieConfig
	log      *slog.Logger
}

func NewNewsHandler(fetcher headlines.Fetcher, sessions *session.Manager, renderer *view.HTMLRenderer, cookie CookieConfig, log *slog.Logger) *NewsHandler {
	return &NewsHandler{
		fetcher:  fetcher,
		sessions: sessions,
		renderer: renderer,
		cookie:   cookie,
		log:      log,
	}
}

func (h *NewsHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// session returns the caller's session, starting one when the cookie is
// missing or refers to an expired session.
func (h *NewsHandler) session(c echo.Context) *session.Session {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		if s, ok := h.sessions.Get(cookie.Value); ok {
			return s
		}
	}

	s := h.sessions.Create()
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Page handles GET /
func (h *NewsHandler) Page(c echo.Context) error {
	s := h.session(c)

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, view.NewPage(s.Store.Snapshot())); err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "internal error")
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Select handles POST /select and GET /select/:category
func (h *NewsHandler) Select(c echo.Context) error {
	raw := c.Param("category")
	if raw == "" {
		raw = c.FormValue("category")
	}

	category, err := domain.ParseCategory(raw)
	if err == nil && category == domain.CategoryNone {
		err = fmt.Errorf("%w: category is required", domain.ErrUnknownCategory)
	}
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid category")
	}

	s := h.session(c)
	if _, err := s.Store.Select(category); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid category")
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Headlines handles GET /api/v1/headlines
// @Summary Get top headlines
// @Description Fetches top headlines from NewsAPI for one category, in upstream order
// @Tags headlines
// @Produce json
// @Param category query string false "general, business, entertainment, health, science, sports or technology; empty means no filter"
// @Param country query string false "Two-letter country code (default: us)"
// @Success 200 {object} rest.HeadlinesResponse
// @Failure 400,502,504 {object} map[string]string
// @Router /api/v1/headlines [get]
func (h *NewsHandler) Headlines(c echo.Context) error {
	var req HeadlinesRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid category")
	}
	if req.Country != "" && len(req.Country) != 2 {
		return h.handleError(c, fmt.Errorf("country %q is not a two-letter code", req.Country), http.StatusBadRequest, "invalid country")
	}

	articles, err := h.fetcher.TopHeadlines(c.Request().Context(), category, req.Country)
	if err != nil {
		status, message := upstreamStatus(err)
		return h.handleError(c, err, status, message)
	}

	country := req.Country
	if cr, ok := h.fetcher.(countryReporter); ok && country == "" {
		country = cr.Country()
	}

	return c.JSON(http.StatusOK, HeadlinesResponse{
		Category: category.String(),
		Country:  country,
		Count:    len(articles),
		Articles: NewArticles(articles),
	})
}

// Categories handles GET /api/v1/categories
// @Summary Get categories
// @Description Lists the selectable categories in display order
// @Tags headlines
// @Produce json
// @Success 200 {array} rest.Category
// @Router /api/v1/categories [get]
func (h *NewsHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, NewCategories(domain.Categories()))
}

func (h *NewsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}

func (h *NewsHandler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusNotFound, "swagger doc not registered")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

func upstreamStatus(err error) (int, string) {
	var apiErr *newsapi.APIError
	switch {
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest, "invalid category"
	case errors.Is(err, newsapi.ErrNetwork):
		return http.StatusGatewayTimeout, "upstream unreachable"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "upstream error"
	case errors.Is(err, newsapi.ErrDecode):
		return http.StatusBadGateway, "upstream returned an unexpected response"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
