package handlers

import (
	"errors"
	"net/http"

	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/services"
	"lpg_inventory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BackupHandler serves JSON snapshot export and restore.
type BackupHandler struct {
	backupService services.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(bs services.BackupService) *BackupHandler {
	return &BackupHandler{backupService: bs}
}

// ExportBackup streams a full inventory snapshot as a JSON download.
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	snapshot, err := h.backupService.ExportSnapshot()
	if err != nil {
		utils.LogError(err, "ExportBackup: Error from backupService.ExportSnapshot")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export backup.", "Internal error"))
		return
	}

	utils.LogDebug("Backup exported", map[string]interface{}{
		"snapshot_id": snapshot.SnapshotID,
		"cylinders":   len(snapshot.Cylinders),
		"movements":   len(snapshot.Movements),
	})
	c.Header("Content-Disposition", `attachment; filename="lpg-inventory-backup-`+snapshot.SnapshotID+`.json"`)
	c.JSON(http.StatusOK, snapshot)
}

// RestoreBackup applies an uploaded snapshot.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	var snapshot models.BackupSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		utils.LogError(err, "RestoreBackup: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid snapshot payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.backupService.RestoreSnapshot(&snapshot); err != nil {
		utils.LogError(err, "RestoreBackup: Error from backupService.RestoreSnapshot")
		if errors.Is(err, services.ErrBackupValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Snapshot validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to restore backup.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Backup restored successfully", "snapshot_id": snapshot.SnapshotID})
}
