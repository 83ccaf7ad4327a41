package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
)

// GetCrosstabHandler returns record counts for every combination of two
// attributes' child codes, reshaped for table rendering: one category per
// x child, one series per y child. A y series sharing the x attribute's
// name is disambiguated with the y attribute's name.
func GetCrosstabHandler(c echo.Context) error {
	type getCrosstabParams struct {
		XAttributeID int64 `query:"xAttributeId" validate:"required"`
		XSetID       int64 `query:"xSetId" validate:"required"`
		YAttributeID int64 `query:"yAttributeId" validate:"required"`
		YSetID       int64 `query:"ySetId" validate:"required"`
	}

	type crosstabSeries struct {
		Name   string  `json:"name"`
		Counts []int64 `json:"counts"`
	}

	type getCrosstabResponse struct {
		XAttribute string           `json:"xAttribute"`
		YAttribute string           `json:"yAttribute"`
		Categories []string         `json:"categories"`
		Series     []crosstabSeries `json:"series"`
	}

	params := new(getCrosstabParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	sess := c.(*middleware.AppContext).Session

	xAttr, ok := sess.Model.ByID(params.XAttributeID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown x attribute"})
	}
	yAttr, ok := sess.Model.ByID(params.YAttributeID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown y attribute"})
	}

	crosstab, err := sess.Client.FetchCrosstab(c.Request().Context(),
		params.XAttributeID, params.XSetID, params.YAttributeID, params.YSetID)
	if err != nil {
		return remoteErrorResponse(c, err)
	}

	resp := getCrosstabResponse{
		XAttribute: xAttr.Name,
		YAttribute: yAttr.Name,
		Categories: crosstab.ColumnAttNames,
		Series:     make([]crosstabSeries, 0, len(crosstab.Rows)),
	}
	for _, row := range crosstab.Rows {
		name := row.AttributeName
		if name == xAttr.Name {
			name = fmt.Sprintf("%s (%s)", name, yAttr.Name)
		}
		resp.Series = append(resp.Series, crosstabSeries{Name: name, Counts: row.Counts})
	}

	return c.JSON(http.StatusOK, resp)
}
