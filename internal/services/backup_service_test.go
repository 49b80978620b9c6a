package services

import (
	"testing"

	"lpg_inventory_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSnapshot(t *testing.T) {
	cylinderRepo := newStubCylinderRepo()
	movementRepo := &stubMovementRepo{}
	cylinderRepo.add(models.Cylinder{Identifier: "LPG-ABC123", Status: models.StatusAvailable})
	movementRepo.movements = []models.CylinderMovement{
		{ProductIdentifier: "LPG-ABC123", FromStatus: models.StatusAvailable, ToStatus: models.StatusSold},
	}

	service := NewBackupService(cylinderRepo, movementRepo, nil)
	snapshot, err := service.ExportSnapshot()
	require.NoError(t, err)

	assert.NotEmpty(t, snapshot.SnapshotID)
	assert.Equal(t, models.BackupSnapshotVersion, snapshot.Version)
	assert.False(t, snapshot.CreatedAt.IsZero())
	assert.Len(t, snapshot.Cylinders, 1)
	assert.Len(t, snapshot.Movements, 1)
}

func TestRestoreSnapshotCommits(t *testing.T) {
	cylinderRepo := newStubCylinderRepo()
	movementRepo := &stubMovementRepo{}
	beginner := &stubTxBeginner{}
	service := &backupService{
		cylinderRepo: cylinderRepo,
		movementRepo: movementRepo,
		db:           beginner,
	}

	err := service.RestoreSnapshot(&models.BackupSnapshot{
		Version: models.BackupSnapshotVersion,
		Cylinders: []models.Cylinder{
			{Identifier: "LPG-ABC123", Status: models.StatusAvailable},
		},
		Movements: []models.CylinderMovement{
			{ProductIdentifier: "LPG-ABC123", FromStatus: models.StatusAvailable, ToStatus: models.StatusSold},
		},
	})
	require.NoError(t, err)

	restored, err := cylinderRepo.GetCylinderByIdentifier("LPG-ABC123")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, restored.Status)
	assert.Len(t, movementRepo.movements, 1)
	require.NotNil(t, beginner.tx)
	assert.True(t, beginner.tx.committed)
}

func TestRestoreSnapshotRejectsNil(t *testing.T) {
	service := NewBackupService(newStubCylinderRepo(), &stubMovementRepo{}, nil)
	assert.ErrorIs(t, service.RestoreSnapshot(nil), ErrBackupValidation)
}

func TestRestoreSnapshotRejectsUnsupportedVersion(t *testing.T) {
	service := NewBackupService(newStubCylinderRepo(), &stubMovementRepo{}, nil)
	err := service.RestoreSnapshot(&models.BackupSnapshot{Version: 99})
	assert.ErrorIs(t, err, ErrBackupValidation)
}

func TestRestoreSnapshotRejectsUnknownStatus(t *testing.T) {
	service := NewBackupService(newStubCylinderRepo(), &stubMovementRepo{}, nil)
	err := service.RestoreSnapshot(&models.BackupSnapshot{
		Version: models.BackupSnapshotVersion,
		Cylinders: []models.Cylinder{
			{Identifier: "LPG-ABC123", Status: "exploded"},
		},
	})
	assert.ErrorIs(t, err, ErrBackupValidation)
}

func TestRestoreSnapshotRejectsOrphanMovement(t *testing.T) {
	service := NewBackupService(newStubCylinderRepo(), &stubMovementRepo{}, nil)
	err := service.RestoreSnapshot(&models.BackupSnapshot{
		Version: models.BackupSnapshotVersion,
		Cylinders: []models.Cylinder{
			{Identifier: "LPG-ABC123", Status: models.StatusAvailable},
		},
		Movements: []models.CylinderMovement{
			{ProductIdentifier: "LPG-GHOST", FromStatus: models.StatusAvailable, ToStatus: models.StatusSold},
		},
	})
	assert.ErrorIs(t, err, ErrBackupValidation)
}
