package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

// GetRecordsHandler returns the records tagged with any of the given
// attributes (OR semantics), deduplicated by itemId with the first
// occurrence winning.
func GetRecordsHandler(c echo.Context) error {
	type getRecordsResponse struct {
		Records   []eppi.Record `json:"records"`
		Count     int           `json:"count"`
		Unmatched []int64       `json:"unmatched,omitempty"`
	}

	attributeIDs, setIDs, errResp := bindSelection(c)
	if errResp != nil {
		return errResp
	}

	sess := c.(*middleware.AppContext).Session
	resolved, unmatched := resolveAttributes(sess, attributeIDs, setIDs)

	records, _, err := sess.Records.ByAttributesOr(c.Request().Context(), resolved)
	if err != nil {
		return remoteErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, getRecordsResponse{
		Records:   records,
		Count:     len(records),
		Unmatched: unmatched,
	})
}

// GetAllRecordsHandler returns the complete result set of an AND search over
// the combined filter, paging through the server-side result list.
func GetAllRecordsHandler(c echo.Context) error {
	type getAllRecordsResponse struct {
		Records    []eppi.Record `json:"records"`
		TotalCount int64         `json:"totalCount"`
		Unmatched  []int64       `json:"unmatched,omitempty"`
	}

	attributeIDs, setIDs, errResp := bindSelection(c)
	if errResp != nil {
		return errResp
	}

	sess := c.(*middleware.AppContext).Session
	resolved, unmatched := resolveAttributes(sess, attributeIDs, setIDs)
	if len(resolved) == 0 {
		return c.JSON(http.StatusOK, getAllRecordsResponse{Unmatched: unmatched})
	}

	ids := make([]int64, len(resolved))
	sets := make([]int64, len(resolved))
	for i, attr := range resolved {
		ids[i] = attr.ID
		sets[i] = attr.SetID
	}

	records, total, err := sess.Records.AllPages(c.Request().Context(), searchDescription(resolved), ids, sets)
	if err != nil {
		return remoteErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, getAllRecordsResponse{
		Records:    records,
		TotalCount: total,
		Unmatched:  unmatched,
	})
}

// bindSelection parses the attributeIds/setIds query pair shared by the
// record endpoints.
func bindSelection(c echo.Context) (attributeIDs, setIDs []int64, errResp error) {
	attributeIDs, err := parseIDList(c.QueryParam("attributeIds"))
	if err != nil {
		return nil, nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	setIDs, err = parseIDList(c.QueryParam("setIds"))
	if err != nil {
		return nil, nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if len(attributeIDs) != len(setIDs) {
		return nil, nil, c.JSON(http.StatusBadRequest, map[string]string{"error": "attributeIds and setIds must have the same length"})
	}
	return attributeIDs, setIDs, nil
}

// searchDescription renders the filter the way the record list endpoint
// expects it documented, e.g. "`A` [AND] `B`".
func searchDescription(attributes []taxonomy.Attribute) string {
	names := make([]string, len(attributes))
	for i, attr := range attributes {
		names[i] = fmt.Sprintf("`%s`", attr.Name)
	}
	return strings.Join(names, " [AND] ")
}
