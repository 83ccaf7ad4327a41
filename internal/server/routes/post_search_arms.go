package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/search"
)

// PostSearchArmHandler appends one arm to the session's search. A non-empty
// free-text query wins over any attribute selection. An arm with neither a
// query nor selected values defaults to selecting every code under the
// chosen parent attribute.
func PostSearchArmHandler(c echo.Context) error {
	type postSearchArmParams struct {
		Operator string   `json:"operator" validate:"omitempty,oneof=AND OR"`
		Query    string   `json:"query"`
		Parent   string   `json:"parent"`
		Values   []string `json:"values"`
	}

	params := new(postSearchArmParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	sess := c.(*middleware.AppContext).Session

	arm := search.Arm{
		Query:  params.Query,
		Parent: params.Parent,
		Values: params.Values,
	}

	// Select-all default: no query, no explicit values, but a chosen parent.
	if arm.Query == "" && len(arm.Values) == 0 && arm.Parent != "" {
		parent, ok := sess.Model.FindParentByName(arm.Parent)
		if !ok {
			return c.JSON(http.StatusNotFound,
				map[string]string{"error": (&search.ResolutionError{Name: arm.Parent}).Error()})
		}
		table, err := sess.Frequencies.Get(c.Request().Context(), parent.ID, parent.SetID)
		if err != nil {
			return remoteErrorResponse(c, err)
		}
		arm.Values = table.Codes()
	}

	err := sess.WithSearch(func(s *search.Search) error {
		return s.AddArm(search.Operator(params.Operator), arm)
	})
	if err != nil {
		if errors.Is(err, search.ErrEmptyArm) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, sess.SearchSnapshot())
}
