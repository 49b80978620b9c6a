package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/services"
	"lpg_inventory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MovementHandler holds the movement service.
type MovementHandler struct {
	movementService services.MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(ms services.MovementService) *MovementHandler {
	return &MovementHandler{movementService: ms}
}

// CreateMovement records a status transition for a cylinder. This is the only
// endpoint through which a cylinder's status can change.
func (h *MovementHandler) CreateMovement(c *gin.Context) {
	var req services.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateMovement: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	var recordedBy *int64
	if userID, ok := currentUserID(c); ok {
		recordedBy = &userID
	}

	movement, err := h.movementService.RecordStatusChange(req, recordedBy)
	if err != nil {
		utils.LogError(err, "CreateMovement: Error from movementService.RecordStatusChange")
		if errors.Is(err, services.ErrCylinderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cylinder not found.", err.Error()))
		} else if errors.Is(err, services.ErrSameStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Product is already in the specified status.", err.Error()))
		} else if errors.Is(err, services.ErrMovementValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else if errors.Is(err, services.ErrStaleStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cylinder status changed concurrently. Re-fetch and retry.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record movement.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, movement)
}

// GetMovements handles fetching movements with filters and pagination.
func (h *MovementHandler) GetMovements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var identifier, movementType *string
	if v := c.Query("product_identifier"); v != "" {
		identifier = &v
	}
	if v := c.Query("movement_type"); v != "" {
		movementType = &v
	}

	var startDate, endDate *time.Time
	if v := c.Query("start_date"); v != "" { // YYYY-MM-DD
		parsed, err := time.Parse("2006-01-02", v)
		if err == nil {
			startDate = &parsed
		}
	}
	if v := c.Query("end_date"); v != "" { // YYYY-MM-DD
		parsed, err := time.Parse("2006-01-02", v)
		if err == nil {
			endOfDay := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
			endDate = &endOfDay
		}
	}

	movements, totalCount, err := h.movementService.GetMovements(identifier, movementType, startDate, endDate, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetMovements: Error from movementService.GetMovements")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch movements.", "Internal error"))
		return
	}

	if movements == nil {
		movements = []models.CylinderMovement{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      movements,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}
