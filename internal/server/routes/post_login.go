package routes

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/internal/session"
	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/frequency"
	"github.com/eppi-vis/dashboard/pkg/logger"
	"github.com/eppi-vis/dashboard/pkg/records"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

// LoginHandler opens a new dashboard session: it logs into the review
// database, eagerly loads the attribute forest and the year histogram, and
// hands out the session token. Any remote failure here is fatal to the
// session attempt; no partially initialized session is ever registered.
func LoginHandler(c echo.Context) error {
	type loginResponse struct {
		Token          string `json:"token"`
		SessionID      string `json:"sessionId"`
		AttributeCount int    `json:"attributeCount"`
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	client, err := eppi.NewClient(eppi.NewClientParams{
		BaseURL:  app.EppiBaseURL,
		WebDBID:  app.WebDBID,
		MaxTries: app.MaxTries,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	if _, err := client.Login(ctx); err != nil {
		logger.Error("Review database login failed", "err", err)
		return remoteErrorResponse(c, err)
	}

	sets, err := client.FetchReviewSets(ctx)
	if err != nil {
		logger.Error("Attribute forest fetch failed", "err", err)
		return remoteErrorResponse(c, err)
	}
	model := taxonomy.ParseForest(sets)

	years, err := client.YearHistogram(ctx)
	if err != nil {
		logger.Error("Year histogram fetch failed", "err", err)
		return remoteErrorResponse(c, err)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	retriever, err := records.NewRetriever(client, app.PageCacheSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	sess, err := session.New(session.NewParams{
		Client:      client,
		Model:       model,
		Frequencies: frequency.NewCache(client),
		Records:     retriever,
		Years:       years,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	app.Sessions.Put(sess)

	token, err := middleware.SignSessionToken(app.TokenSecret, sess.ID)
	if err != nil {
		app.Sessions.Delete(sess.ID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	logger.Info("Session opened", "session", sess.ID, "attributes", len(model.Attributes))

	return c.JSON(http.StatusOK, loginResponse{
		Token:          token,
		SessionID:      sess.ID,
		AttributeCount: len(model.Attributes),
	})
}
