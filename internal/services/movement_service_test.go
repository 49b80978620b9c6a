package services

import (
	"testing"

	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMovementServiceWithRepos() (MovementService, *stubCylinderRepo, *stubMovementRepo, *stubTxBeginner) {
	cylinderRepo := newStubCylinderRepo()
	movementRepo := &stubMovementRepo{}
	beginner := &stubTxBeginner{}
	service := &movementService{
		movementRepo: movementRepo,
		cylinderRepo: cylinderRepo,
		db:           beginner,
	}
	return service, cylinderRepo, movementRepo, beginner
}

func TestRecordStatusChangeCommits(t *testing.T) {
	service, cylinderRepo, movementRepo, beginner := newMovementServiceWithRepos()
	stored := cylinderRepo.add(models.Cylinder{Identifier: "LPG-ABC123", Status: models.StatusAvailable})

	movement, err := service.RecordStatusChange(RecordMovementRequest{
		ProductIdentifier: "LPG-ABC123",
		ToStatus:          models.StatusSold,
		MovementType:      models.MovementSale,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAvailable, movement.FromStatus)
	assert.Equal(t, models.StatusSold, movement.ToStatus)
	assert.Equal(t, models.StatusSold, cylinderRepo.byID[stored.ID].Status)
	assert.Len(t, movementRepo.movements, 1)
	require.NotNil(t, beginner.tx)
	assert.True(t, beginner.tx.committed)
}

func TestRecordStatusChangeStaleStatus(t *testing.T) {
	service, cylinderRepo, movementRepo, beginner := newMovementServiceWithRepos()
	cylinderRepo.add(models.Cylinder{Identifier: "LPG-ABC123", Status: models.StatusAvailable})

	// A concurrent writer moved the cylinder between the snapshot read and
	// the conditional update; the whole transaction rolls back.
	cylinderRepo.updateStatusErr = repositories.ErrStaleStatus

	_, err := service.RecordStatusChange(RecordMovementRequest{
		ProductIdentifier: "LPG-ABC123",
		ToStatus:          models.StatusSold,
		MovementType:      models.MovementSale,
	}, nil)
	assert.ErrorIs(t, err, ErrStaleStatus)
	assert.Empty(t, movementRepo.movements)
	require.NotNil(t, beginner.tx)
	assert.True(t, beginner.tx.rolledBack)
	assert.False(t, beginner.tx.committed)
}

func TestRecordStatusChangeUnknownCylinder(t *testing.T) {
	service, _, _, _ := newMovementServiceWithRepos()

	_, err := service.RecordStatusChange(RecordMovementRequest{
		ProductIdentifier: "nope42",
		ToStatus:          models.StatusSold,
		MovementType:      models.MovementSale,
	}, nil)
	assert.ErrorIs(t, err, ErrCylinderNotFound)
}

func TestRecordStatusChangeNormalizesIdentifier(t *testing.T) {
	service, cylinderRepo, _, _ := newMovementServiceWithRepos()
	cylinderRepo.add(models.Cylinder{Identifier: "LPG-ABC123", Status: models.StatusSold})

	// The raw identifier resolves to the same cylinder; the requested target
	// equals its current status, so the engine's no-op rejection fires.
	_, err := service.RecordStatusChange(RecordMovementRequest{
		ProductIdentifier: "lpg-abc123",
		ToStatus:          models.StatusSold,
		MovementType:      models.MovementStatusChange,
	}, nil)
	assert.ErrorIs(t, err, ErrSameStatus)
}

func TestRecordStatusChangeRejectsNoOp(t *testing.T) {
	service, cylinderRepo, _, _ := newMovementServiceWithRepos()
	cylinderRepo.add(models.Cylinder{Identifier: "LPG-ABC123", Status: models.StatusAvailable})

	_, err := service.RecordStatusChange(RecordMovementRequest{
		ProductIdentifier: "LPG-ABC123",
		ToStatus:          models.StatusAvailable,
		MovementType:      models.MovementStatusChange,
	}, nil)
	assert.ErrorIs(t, err, ErrSameStatus)
}

func TestRecordStatusChangeRejectsUnknownTarget(t *testing.T) {
	service, cylinderRepo, _, _ := newMovementServiceWithRepos()
	cylinderRepo.add(models.Cylinder{Identifier: "LPG-ABC123", Status: models.StatusAvailable})

	_, err := service.RecordStatusChange(RecordMovementRequest{
		ProductIdentifier: "LPG-ABC123",
		ToStatus:          "exploded",
		MovementType:      models.MovementStatusChange,
	}, nil)
	assert.ErrorIs(t, err, ErrMovementValidation)
}

func TestRecordStatusChangeRejectsUnknownMovementTypeTarget(t *testing.T) {
	service, cylinderRepo, _, _ := newMovementServiceWithRepos()
	cylinderRepo.add(models.Cylinder{Identifier: "LPG-ABC123", Status: models.StatusAvailable})

	// A blank movement type is defaulted from the target status, so the
	// request fails on the unknown target rather than the missing type.
	_, err := service.RecordStatusChange(RecordMovementRequest{
		ProductIdentifier: "LPG-ABC123",
		ToStatus:          "exploded",
		MovementType:      "",
	}, nil)
	assert.ErrorIs(t, err, ErrMovementValidation)
}

func TestGetMovementsNormalizesIdentifierFilter(t *testing.T) {
	service, _, movementRepo, _ := newMovementServiceWithRepos()
	movementRepo.movements = []models.CylinderMovement{
		{ProductIdentifier: "LPG-ABC123", FromStatus: models.StatusAvailable, ToStatus: models.StatusSold},
		{ProductIdentifier: "LPG-XYZ987", FromStatus: models.StatusAvailable, ToStatus: models.StatusMissing},
	}

	raw := "lpg-abc123"
	movements, total, err := service.GetMovements(&raw, nil, nil, nil, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, movements, 1)
	assert.Equal(t, "LPG-ABC123", movements[0].ProductIdentifier)
}
