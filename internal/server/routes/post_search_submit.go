package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/logger"
	"github.com/eppi-vis/dashboard/pkg/search"
)

// PostSearchSubmitHandler executes the session's search and returns the
// folded record set together with the search documentation. Unresolvable
// attribute names come back as warnings, not silent drops.
func PostSearchSubmitHandler(c echo.Context) error {
	sess := c.(*middleware.AppContext).Session

	err := sess.WithSearch(func(s *search.Search) error {
		return s.Submit()
	})
	if err != nil {
		if errors.Is(err, search.ErrNoArms) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	snapshot := sess.SearchSnapshot()
	evaluator := &search.Evaluator{
		Model:   sess.Model,
		Records: sess.Records,
		Text:    sess.Client,
	}

	result, err := evaluator.Execute(c.Request().Context(), &snapshot)
	if err != nil {
		logger.Error("Search execution failed", "session", sess.ID, "err", err)
		return remoteErrorResponse(c, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn("Search arm skipped selection", "session", sess.ID, "warning", warning)
	}

	return c.JSON(http.StatusOK, result)
}
