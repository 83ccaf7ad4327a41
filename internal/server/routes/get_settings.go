package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/internal/session"
)

// GetSettingsHandler returns the session's display preferences together with
// the selectable color themes.
func GetSettingsHandler(c echo.Context) error {
	type getSettingsResponse struct {
		Settings    session.Settings `json:"settings"`
		ColorThemes []string         `json:"colorThemes"`
	}

	sess := c.(*middleware.AppContext).Session
	return c.JSON(http.StatusOK, getSettingsResponse{
		Settings:    sess.Settings(),
		ColorThemes: session.ColorThemes,
	})
}
