package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
)

// GetFrequenciesHandler returns the child-code count table for one
// attribute, fetching and caching it on first use. A failure here leaves
// the rest of the session usable.
func GetFrequenciesHandler(c echo.Context) error {
	type getFrequenciesParams struct {
		AttributeID int64 `query:"attributeId" validate:"required"`
		SetID       int64 `query:"setId" validate:"required"`
	}

	params := new(getFrequenciesParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	sess := c.(*middleware.AppContext).Session
	ctx := c.Request().Context()

	table, err := sess.Frequencies.Get(ctx, params.AttributeID, params.SetID)
	if err != nil {
		return remoteErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, table)
}
