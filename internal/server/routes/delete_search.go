package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/pkg/search"
)

// DeleteSearchHandler discards the session's search builder state.
func DeleteSearchHandler(c echo.Context) error {
	sess := c.(*middleware.AppContext).Session

	_ = sess.WithSearch(func(s *search.Search) error {
		s.Reset()
		return nil
	})

	return c.NoContent(http.StatusNoContent)
}
