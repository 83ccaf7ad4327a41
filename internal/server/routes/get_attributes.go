package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
)

// GetAttributesHandler returns the flattened attribute list in traversal
// order (parents before children, siblings in source order).
func GetAttributesHandler(c echo.Context) error {
	sess := c.(*middleware.AppContext).Session
	return c.JSON(http.StatusOK, sess.Model.Attributes)
}

// GetAttributeTreeHandler returns the label/value tree for tree widgets.
func GetAttributeTreeHandler(c echo.Context) error {
	sess := c.(*middleware.AppContext).Session
	return c.JSON(http.StatusOK, sess.Model.Tree)
}
