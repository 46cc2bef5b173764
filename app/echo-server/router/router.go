package router

import (
	"relatedAttributes/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRelatedRoutes(api *echo.Group, handler *rest.RelatedHandler, authRequired echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("/:id/related", handler.GetRelatedProducts)
	products.GET("/:id/related/debug", handler.DebugRelated, authRequired)
}

func SetupRelatedSettingsRoutes(api *echo.Group, handler *rest.RelatedSettingsHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/related", authRequired, adminOnly)

	admin.GET("/priorities", handler.GetPriorities)
	admin.PUT("/priorities", handler.SavePriorities)
	admin.GET("/threshold", handler.GetThreshold)
	admin.PUT("/threshold", handler.SaveThreshold)
	admin.GET("/methods", handler.GetMethods)
	admin.PUT("/methods", handler.SaveMethods)
}

func SetupMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
