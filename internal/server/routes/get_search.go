package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
)

// GetSearchHandler returns the search builder state: arms, operators and
// whether the search has been submitted.
func GetSearchHandler(c echo.Context) error {
	sess := c.(*middleware.AppContext).Session
	return c.JSON(http.StatusOK, sess.SearchSnapshot())
}
