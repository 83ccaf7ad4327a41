package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/session"
)

// App bundles the process-wide collaborators handlers need.
type App struct {
	Sessions    *session.Store
	TokenSecret []byte

	EppiBaseURL   string
	WebDBID       int
	MaxTries      int
	PageCacheSize int
}

// AppContext wraps the echo context with the app and, after auth, the
// caller's session.
type AppContext struct {
	echo.Context
	App     *App
	Session *session.Session
}

// AppContextMiddleware injects the app into every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
