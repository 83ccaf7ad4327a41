package server

import (
	"github.com/eppi-vis/dashboard/internal/server/middleware"
	"github.com/eppi-vis/dashboard/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	// Login opens the review database session and hands out the bearer token
	e.POST("/api/login", routes.LoginHandler)

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	apiRoutes.POST("/logout", routes.LogoutHandler)

	// Attribute model routes
	apiRoutes.GET("/attributes", routes.GetAttributesHandler)
	apiRoutes.GET("/attributes/tree", routes.GetAttributeTreeHandler)
	apiRoutes.GET("/frequencies", routes.GetFrequenciesHandler)
	apiRoutes.GET("/hierarchy", routes.GetHierarchyHandler)
	apiRoutes.GET("/crosstab", routes.GetCrosstabHandler)

	// Record routes
	apiRoutes.GET("/records", routes.GetRecordsHandler)
	apiRoutes.GET("/records/all", routes.GetAllRecordsHandler)
	apiRoutes.GET("/overview", routes.GetOverviewHandler)

	// Boolean search routes
	apiRoutes.GET("/search", routes.GetSearchHandler)
	apiRoutes.POST("/search/arms", routes.PostSearchArmHandler)
	apiRoutes.POST("/search/submit", routes.PostSearchSubmitHandler)
	apiRoutes.DELETE("/search", routes.DeleteSearchHandler)

	// Settings and export routes
	apiRoutes.GET("/settings", routes.GetSettingsHandler)
	apiRoutes.PUT("/settings", routes.PutSettingsHandler)
	apiRoutes.POST("/export/ris", routes.PostExportRISHandler)
	apiRoutes.POST("/export/csv", routes.PostExportCSVHandler)
}
