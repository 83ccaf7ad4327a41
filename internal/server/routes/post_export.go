package routes

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/export"
)

// exportSelection fetches the record set to export: OR over the selected
// attributes by default, or the complete paged AND result when mode=and.
func exportSelection(c echo.Context) ([]eppi.Record, error) {
	attributeIDs, setIDs, errResp := bindSelection(c)
	if errResp != nil {
		return nil, errResp
	}

	sess := c.(*middleware.AppContext).Session
	resolved, _ := resolveAttributes(sess, attributeIDs, setIDs)

	if c.QueryParam("mode") == "and" {
		if len(resolved) == 0 {
			return nil, nil
		}
		ids := make([]int64, len(resolved))
		sets := make([]int64, len(resolved))
		for i, attr := range resolved {
			ids[i] = attr.ID
			sets[i] = attr.SetID
		}
		records, _, err := sess.Records.AllPages(c.Request().Context(), searchDescription(resolved), ids, sets)
		if err != nil {
			return nil, remoteErrorResponse(c, err)
		}
		return records, nil
	}

	records, _, err := sess.Records.ByAttributesOr(c.Request().Context(), resolved)
	if err != nil {
		return nil, remoteErrorResponse(c, err)
	}
	return records, nil
}

// PostExportRISHandler streams the selected records as an RIS download.
func PostExportRISHandler(c echo.Context) error {
	records, err := exportSelection(c)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("data_%d_records.ris", len(records))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "application/x-research-info-systems",
		[]byte(export.RIS(records)))
}

// PostExportCSVHandler streams the selected records as a CSV download.
func PostExportCSVHandler(c echo.Context) error {
	records, err := exportSelection(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	filename := fmt.Sprintf("data_%d_records.csv", len(records))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
