// Package lifecycle validates and records cylinder status transitions.
//
// This is the only place a status change is authorized. The engine is pure:
// it never reads storage and holds no cylinder state of its own. The caller
// supplies an up-to-date snapshot of the cylinder's current status and is
// responsible for persisting the returned movement together with the status
// update as one atomic unit of work.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lpg_inventory_backend/internal/models"
)

var (
	// ErrSameStatus is returned when the requested target status equals the
	// cylinder's current status (no-op transitions are rejected).
	ErrSameStatus = errors.New("product is already in the specified status")

	// ErrUnknownStatus is returned when a status is not a member of the
	// status enum.
	ErrUnknownStatus = errors.New("unknown cylinder status")

	// ErrMissingField is returned when a required movement field is absent.
	ErrMissingField = errors.New("required movement field missing")
)

// TransitionRequest carries everything needed to validate one transition
// against a cylinder snapshot.
type TransitionRequest struct {
	ProductIdentifier string
	CurrentStatus     models.CylinderStatus
	TargetStatus      models.CylinderStatus
	MovementType      string
	Reason            *string
	Notes             *string
	ReferenceNumber   *string
	RecordedBy        *int64
}

// AllowedTarget reports whether a cylinder may move from one status to
// another. Every pair of distinct statuses is permitted; the system does not
// encode a stricter transition graph.
func AllowedTarget(from, to models.CylinderStatus) bool {
	return from != to
}

// RecordTransition validates the requested transition and constructs the
// movement record for it. Validation order: no-op rejection first, then
// status enum membership, then required identification fields. On success
// the movement carries FromStatus equal to the supplied snapshot status and
// OccurredAt set to the current time.
//
// The returned movement is only valid if the caller persists it and applies
// the status update to the cylinder in the same transaction.
func RecordTransition(req TransitionRequest) (*models.CylinderMovement, error) {
	if !AllowedTarget(req.CurrentStatus, req.TargetStatus) {
		return nil, ErrSameStatus
	}
	if !req.TargetStatus.IsValid() {
		return nil, fmt.Errorf("%w: target status %q", ErrUnknownStatus, req.TargetStatus)
	}
	if !req.CurrentStatus.IsValid() {
		return nil, fmt.Errorf("%w: current status %q", ErrUnknownStatus, req.CurrentStatus)
	}
	if strings.TrimSpace(req.ProductIdentifier) == "" {
		return nil, fmt.Errorf("%w: product_identifier", ErrMissingField)
	}
	if strings.TrimSpace(req.MovementType) == "" {
		return nil, fmt.Errorf("%w: movement_type", ErrMissingField)
	}

	return &models.CylinderMovement{
		ProductIdentifier: req.ProductIdentifier,
		FromStatus:        req.CurrentStatus,
		ToStatus:          req.TargetStatus,
		MovementType:      req.MovementType,
		Reason:            req.Reason,
		Notes:             req.Notes,
		ReferenceNumber:   req.ReferenceNumber,
		RecordedBy:        req.RecordedBy,
		OccurredAt:        time.Now(),
	}, nil
}

// DefaultMovementType maps a target status to the movement classification
// conventionally used for it. Callers may always override with an explicit
// type.
func DefaultMovementType(to models.CylinderStatus) string {
	switch to {
	case models.StatusSold:
		return models.MovementSale
	case models.StatusMaintenance:
		return models.MovementMaintenance
	case models.StatusDamaged:
		return models.MovementDamage
	case models.StatusMissing:
		return models.MovementLost
	case models.StatusAvailable:
		return models.MovementFound
	default:
		return models.MovementStatusChange
	}
}
