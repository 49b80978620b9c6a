package lifecycle

import (
	"testing"
	"time"

	"lpg_inventory_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() TransitionRequest {
	reason := "Customer purchase"
	return TransitionRequest{
		ProductIdentifier: "LPG-ABC123",
		CurrentStatus:     models.StatusAvailable,
		TargetStatus:      models.StatusSold,
		MovementType:      models.MovementSale,
		Reason:            &reason,
	}
}

func TestRecordTransitionSuccess(t *testing.T) {
	req := validRequest()
	before := time.Now()

	movement, err := RecordTransition(req)
	require.NoError(t, err)
	require.NotNil(t, movement)

	assert.Equal(t, "LPG-ABC123", movement.ProductIdentifier)
	assert.Equal(t, models.StatusAvailable, movement.FromStatus)
	assert.Equal(t, models.StatusSold, movement.ToStatus)
	assert.Equal(t, models.MovementSale, movement.MovementType)
	assert.Equal(t, "Customer purchase", *movement.Reason)
	assert.False(t, movement.OccurredAt.Before(before))
	assert.False(t, movement.OccurredAt.After(time.Now()))
}

func TestRecordTransitionRejectsNoOp(t *testing.T) {
	for _, status := range models.AllStatuses {
		req := validRequest()
		req.CurrentStatus = status
		req.TargetStatus = status

		movement, err := RecordTransition(req)
		assert.Nil(t, movement)
		assert.ErrorIs(t, err, ErrSameStatus, "status %s", status)
	}
}

func TestRecordTransitionTotality(t *testing.T) {
	// Every distinct (from, to) pair is a legal transition.
	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			if from == to {
				continue
			}
			req := validRequest()
			req.CurrentStatus = from
			req.TargetStatus = to
			req.MovementType = models.MovementStatusChange

			movement, err := RecordTransition(req)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, from, movement.FromStatus)
			assert.Equal(t, to, movement.ToStatus)
		}
	}
}

func TestRecordTransitionRejectsUnknownTargetStatus(t *testing.T) {
	req := validRequest()
	req.TargetStatus = "exploded"

	_, err := RecordTransition(req)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestRecordTransitionRejectsUnknownCurrentStatus(t *testing.T) {
	req := validRequest()
	req.CurrentStatus = ""

	_, err := RecordTransition(req)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestRecordTransitionRejectsMissingFields(t *testing.T) {
	req := validRequest()
	req.ProductIdentifier = "  "
	_, err := RecordTransition(req)
	assert.ErrorIs(t, err, ErrMissingField)

	req = validRequest()
	req.MovementType = ""
	_, err = RecordTransition(req)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRecordTransitionNoOpCheckedBeforeFieldValidation(t *testing.T) {
	// A no-op request with missing fields still reports the no-op first.
	req := TransitionRequest{
		CurrentStatus: models.StatusSold,
		TargetStatus:  models.StatusSold,
	}
	_, err := RecordTransition(req)
	assert.ErrorIs(t, err, ErrSameStatus)
}

func TestDefaultMovementType(t *testing.T) {
	assert.Equal(t, models.MovementSale, DefaultMovementType(models.StatusSold))
	assert.Equal(t, models.MovementMaintenance, DefaultMovementType(models.StatusMaintenance))
	assert.Equal(t, models.MovementDamage, DefaultMovementType(models.StatusDamaged))
	assert.Equal(t, models.MovementLost, DefaultMovementType(models.StatusMissing))
	assert.Equal(t, models.MovementFound, DefaultMovementType(models.StatusAvailable))
	assert.Equal(t, models.MovementStatusChange, DefaultMovementType("other"))
}
