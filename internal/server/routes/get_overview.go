package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/eppi"
)

// GetOverviewHandler returns the database-wide numbers the landing page
// shows: total record count and the publication year histogram.
func GetOverviewHandler(c echo.Context) error {
	type getOverviewResponse struct {
		TotalRecords int64            `json:"totalRecords"`
		Years        []eppi.YearCount `json:"years"`
	}

	sess := c.(*middleware.AppContext).Session

	total, err := sess.Client.TotalCount(c.Request().Context())
	if err != nil {
		return remoteErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, getOverviewResponse{
		TotalRecords: total,
		Years:        sess.Years,
	})
}
