package routes

import (
	"time"

	"panelwise/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	api := r.Group("/api/schedule")
	{
		api.POST("/slots", hb.ComputeSlotsHandler)
		api.POST("/slots/all", hb.ComputeAllSlotsHandler)
		api.POST("/check", hb.CheckSlotHandler)
		api.GET("/panel", hb.PanelEventsHandler)
	}

	r.GET("/api/health", hb.HealthHandler)
}
