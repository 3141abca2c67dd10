// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cloudpicker/internal/http/handlers"
	"cloudpicker/internal/http/middleware"
	"cloudpicker/internal/modules/events"
)

type RouterDeps struct {
	Catalog       handlers.CatalogProvider
	Clouds        handlers.LiveLister
	Position      handlers.PositionProvider
	Events        events.Publisher
	CORSOrigins   []string
	SessionSecret string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))
	r.Use(middleware.Sessions(deps.SessionSecret))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	cloudHandler := handlers.NewCloudHandler(deps.Clouds)
	r.GET("/clouds", cloudHandler.List)

	pickerHandler := handlers.NewPickerHandler(deps.Catalog, deps.Position, deps.Events)
	exportHandler := handlers.NewExportHandler(deps.Catalog, deps.Position)

	api := r.Group("/api")
	api.GET("/view", pickerHandler.View)
	api.GET("/providers", pickerHandler.Providers)
	api.PUT("/position", pickerHandler.SetPosition)
	api.DELETE("/position", pickerHandler.ClearPosition)
	api.PUT("/provider", pickerHandler.SetProvider)
	api.POST("/select/:name", pickerHandler.Select)
	api.POST("/nearest", pickerHandler.Nearest)
	api.POST("/nearest/provider", pickerHandler.NearestInProvider)
	api.POST("/reset", pickerHandler.Reset)
	api.POST("/reset/selection", pickerHandler.ResetSelection)
	api.GET("/view.geojson", exportHandler.GeoJSON)
	api.GET("/view.xlsx", exportHandler.XLSX)

	return r
}

// corsConfig allows credentialed requests from origins. Without origins every
// origin is allowed, but without cookies.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
