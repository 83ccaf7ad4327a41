package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/logger"
)

// LogoutHandler drops the caller's session and everything cached in it.
func LogoutHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App
	sess := c.(*middleware.AppContext).Session

	app.Sessions.Delete(sess.ID)
	logger.Info("Session closed", "session", sess.ID)

	return c.NoContent(http.StatusNoContent)
}
