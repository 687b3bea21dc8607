package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// NewServer returns an echo instance with the shared middleware stack.
// Client IPs come from the TCP peer only; X-Forwarded-For and X-Real-IP are
// ignored so per-IP limits cannot be dodged by rewriting headers.
func NewServer(logger zerolog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: corsOrigins}))
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))

	return e
}
