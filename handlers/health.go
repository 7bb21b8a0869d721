package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panelwise/utils"
)

// HealthHandler returns the latest health snapshot of the external
// collaborators (directory store and cache).
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
