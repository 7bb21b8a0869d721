package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Scheduling endpoints.
	ComputeSlotsHandler    gin.HandlerFunc
	ComputeAllSlotsHandler gin.HandlerFunc
	CheckSlotHandler       gin.HandlerFunc
	PanelEventsHandler     gin.HandlerFunc

	// Operational endpoints.
	HealthHandler gin.HandlerFunc
}
