package handlers

import (
	"net/http"

	"lpg_inventory_backend/internal/services"
	"lpg_inventory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves inventory summary views.
type DashboardHandler struct {
	cylinderService services.CylinderService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(cs services.CylinderService) *DashboardHandler {
	return &DashboardHandler{cylinderService: cs}
}

// GetSummary returns per-status cylinder counts and the inventory total.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.cylinderService.GetStatusSummary()
	if err != nil {
		utils.LogError(err, "GetSummary: Error from cylinderService.GetStatusSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch summary.", "Internal error"))
		return
	}

	var total int64
	for _, sc := range summary {
		total += sc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"by_status": summary,
		"total":     total,
	})
}
