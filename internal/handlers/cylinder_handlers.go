package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/services"
	"lpg_inventory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CylinderHandler holds the cylinder service.
type CylinderHandler struct {
	cylinderService services.CylinderService
}

// NewCylinderHandler creates a new CylinderHandler.
func NewCylinderHandler(cs services.CylinderService) *CylinderHandler {
	return &CylinderHandler{cylinderService: cs}
}

// CreateCylinder handles registration of a new cylinder from a QR payload.
func (h *CylinderHandler) CreateCylinder(c *gin.Context) {
	var req services.CreateCylinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateCylinder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	cylinder, err := h.cylinderService.CreateCylinder(req)
	if err != nil {
		utils.LogError(err, "CreateCylinder: Error from cylinderService.CreateCylinder")
		if errors.Is(err, services.ErrIdentifierExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cylinder identifier already exists.", err.Error()))
		} else if errors.Is(err, services.ErrCylinderValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create cylinder.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, cylinder)
}

// GetCylinders handles fetching cylinders with filters and pagination.
func (h *CylinderHandler) GetCylinders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var status, supplier, search *string
	if v := c.Query("status"); v != "" {
		status = &v
	}
	if v := c.Query("supplier"); v != "" {
		supplier = &v
	}
	if v := c.Query("search"); v != "" {
		search = &v
	}

	cylinders, totalCount, err := h.cylinderService.GetCylinders(status, supplier, search, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetCylinders: Error from cylinderService.GetCylinders")
		if errors.Is(err, services.ErrCylinderValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch cylinders.", "Internal error"))
		}
		return
	}

	if cylinders == nil {
		cylinders = []models.Cylinder{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      cylinders,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetCylinderByID handles fetching a single cylinder by numeric ID.
func (h *CylinderHandler) GetCylinderByID(c *gin.Context) {
	idStr := c.Param("id")
	cylinderID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid cylinder ID format.", err.Error()))
		return
	}

	cylinder, err := h.cylinderService.GetCylinderByID(cylinderID)
	if err != nil {
		utils.LogError(err, "GetCylinderByID: Error from cylinderService.GetCylinderByID for ID "+idStr)
		if errors.Is(err, services.ErrCylinderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cylinder not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch cylinder.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, cylinder)
}

// GetCylinderByIdentifier handles fetching a single cylinder by its canonical
// identifier. Accepts raw input; the identifier is normalized before lookup.
func (h *CylinderHandler) GetCylinderByIdentifier(c *gin.Context) {
	identifier := c.Param("identifier")

	cylinder, err := h.cylinderService.GetCylinderByIdentifier(identifier)
	if err != nil {
		utils.LogError(err, "GetCylinderByIdentifier: Error for identifier "+identifier)
		if errors.Is(err, services.ErrCylinderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cylinder not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch cylinder.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, cylinder)
}

// LookupCylinder resolves raw scanned or typed text to a cylinder.
func (h *CylinderHandler) LookupCylinder(c *gin.Context) {
	code := c.Query("code")
	if utils.IsEmpty(code) {
		utils.RespondValidationFailed(c, "query parameter 'code' is required")
		return
	}

	result, err := h.cylinderService.Lookup(code)
	if err != nil {
		utils.LogError(err, "LookupCylinder: Error from cylinderService.Lookup")
		if errors.Is(err, services.ErrCylinderValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to look up cylinder.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateCylinder handles updating a cylinder's attributes (never its status).
func (h *CylinderHandler) UpdateCylinder(c *gin.Context) {
	idStr := c.Param("id")
	cylinderID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid cylinder ID format.", err.Error()))
		return
	}

	var req services.UpdateCylinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateCylinder: Failed to bind JSON for ID "+idStr)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	cylinder, err := h.cylinderService.UpdateCylinder(cylinderID, req)
	if err != nil {
		utils.LogError(err, "UpdateCylinder: Error from cylinderService.UpdateCylinder for ID "+idStr)
		if errors.Is(err, services.ErrCylinderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cylinder not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrCylinderValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update cylinder.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, cylinder)
}

// DeleteCylinder handles deleting a cylinder without movement history.
func (h *CylinderHandler) DeleteCylinder(c *gin.Context) {
	idStr := c.Param("id")
	cylinderID, err := utils.StrToInt64(idStr)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid cylinder ID format.", err.Error()))
		return
	}

	err = h.cylinderService.DeleteCylinder(cylinderID)
	if err != nil {
		utils.LogError(err, "DeleteCylinder: Error from cylinderService.DeleteCylinder for ID "+idStr)
		if errors.Is(err, services.ErrCylinderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cylinder not found to delete.", err.Error()))
		} else if errors.Is(err, services.ErrCylinderInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cylinder cannot be deleted as movements reference it.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete cylinder.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cylinder deleted successfully"})
}
