package rest

import (
	"time"

	"github.com/labstack/echo/v4"
)

const (
	apiV1Prefix = "/api/v1"

	headlinesPath  = apiV1Prefix + "/headlines"
	categoriesPath = apiV1Prefix + "/categories"

	pagePath       = "/"
	selectPath     = "/select"
	eventsPath     = "/events"
	healthPath     = "/health"
	swaggerDocPath = "/swagger/doc.json"
)

// RegisterRoutes builds the echo instance with every web route.
func (h *NewsHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(h.loggingMiddleware)

	e.GET(pagePath, h.Page)
	e.POST(selectPath, h.Select)
	e.GET(selectPath+"/:category", h.Select)
	e.GET(eventsPath, h.Events)

	e.GET(headlinesPath, h.Headlines)
	e.GET(categoriesPath, h.Categories)

	e.GET(healthPath, h.Health)
	e.GET(swaggerDocPath, h.SwaggerDoc)

	return e
}

func (h *NewsHandler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.RealIP(),
		)
		return nil
	}
}
