package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/hierarchy"
)

// GetHierarchyHandler returns the parent/child value table for containment
// charts. Frequency tables that cannot be fetched degrade to zero counts.
func GetHierarchyHandler(c echo.Context) error {
	sess := c.(*middleware.AppContext).Session
	ctx := c.Request().Context()

	rows, err := hierarchy.Build(ctx, sess.Model, sess.Frequencies)
	if err != nil {
		return remoteErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, rows)
}
