package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/session"
	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

// parseIDList parses a comma-separated id list query parameter.
func parseIDList(value string) ([]int64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveAttributes maps parallel (attributeId, setId) lists onto known
// attributes. Pairs that match nothing in the model are reported back
// instead of being silently dropped.
func resolveAttributes(sess *session.Session, attributeIDs, setIDs []int64) (resolved []taxonomy.Attribute, unmatched []int64) {
	for i, id := range attributeIDs {
		found := false
		for _, attr := range sess.Model.Attributes {
			if attr.ID == id && attr.SetID == setIDs[i] {
				resolved = append(resolved, attr)
				found = true
				break
			}
		}
		if !found {
			unmatched = append(unmatched, id)
		}
	}
	return resolved, unmatched
}

// remoteErrorResponse maps retrieval failures onto HTTP responses: upstream
// failures become 502 so the frontend can report them in place without
// tearing the session down.
func remoteErrorResponse(c echo.Context, err error) error {
	var remoteErr *eppi.RemoteError
	if errors.As(err, &remoteErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": remoteErr.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
