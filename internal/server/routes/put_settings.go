package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/internal/session"
)

// PutSettingsHandler updates the session's display preferences. Zero-valued
// fields keep their current value.
func PutSettingsHandler(c echo.Context) error {
	params := new(session.Settings)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	sess := c.(*middleware.AppContext).Session
	return c.JSON(http.StatusOK, sess.UpdateSettings(*params))
}
