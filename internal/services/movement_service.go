package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lpg_inventory_backend/internal/lifecycle"
	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/repositories"
	"lpg_inventory_backend/pkg/qr"
	"lpg_inventory_backend/pkg/utils"
)

// --- Custom Service Errors for Movement ---
var (
	ErrSameStatus         = lifecycle.ErrSameStatus
	ErrMovementValidation = errors.New("movement data validation error")
	ErrStaleStatus        = errors.New("cylinder status changed concurrently, please retry")
)

// --- Movement DTOs ---
type RecordMovementRequest struct {
	ProductIdentifier string                `json:"product_identifier" binding:"required"`
	ToStatus          models.CylinderStatus `json:"to_status" binding:"required"`
	MovementType      string                `json:"movement_type"`
	Reason            string                `json:"reason"`
	Notes             string                `json:"notes"`
	ReferenceNumber   string                `json:"reference_number"`
}

// --- MovementService Interface ---
type MovementService interface {
	RecordStatusChange(req RecordMovementRequest, recordedBy *int64) (*models.CylinderMovement, error)
	GetMovements(identifier, movementType *string, startDate, endDate *time.Time, page, pageSize int) ([]models.CylinderMovement, int, error)
}

// --- movementService Implementation ---
type movementService struct {
	movementRepo repositories.MovementRepository
	cylinderRepo repositories.CylinderRepository
	db           txBeginner
}

// NewMovementService creates a new instance of MovementService.
func NewMovementService(movementRepo repositories.MovementRepository, cylinderRepo repositories.CylinderRepository, db *sql.DB) MovementService {
	return &movementService{
		movementRepo: movementRepo,
		cylinderRepo: cylinderRepo,
		db:           sqlTxBeginner{db: db},
	}
}

// RecordStatusChange is the single write path for cylinder status. It fetches
// the current snapshot, asks the lifecycle engine to validate the transition,
// and persists the movement together with a compare-and-swap status update
// inside one transaction. A concurrent writer that moves the cylinder first
// makes the conditional update match zero rows, and the whole transaction is
// rolled back with ErrStaleStatus.
func (s *movementService) RecordStatusChange(req RecordMovementRequest, recordedBy *int64) (*models.CylinderMovement, error) {
	identifier := qr.DeriveFullIdentifier(req.ProductIdentifier)

	cylinder, err := s.cylinderRepo.GetCylinderByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCylinderNotFound
		}
		return nil, fmt.Errorf("failed to fetch cylinder for status change: %w", err)
	}

	movementType := strings.TrimSpace(req.MovementType)
	if movementType == "" {
		movementType = lifecycle.DefaultMovementType(req.ToStatus)
	}

	movement, err := lifecycle.RecordTransition(lifecycle.TransitionRequest{
		ProductIdentifier: identifier,
		CurrentStatus:     cylinder.Status,
		TargetStatus:      req.ToStatus,
		MovementType:      movementType,
		Reason:            utils.NewNullString(req.Reason),
		Notes:             utils.NewNullString(req.Notes),
		ReferenceNumber:   utils.NewNullString(req.ReferenceNumber),
		RecordedBy:        recordedBy,
	})
	if err != nil {
		if errors.Is(err, lifecycle.ErrSameStatus) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMovementValidation, err)
	}

	tx, err := s.db.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.cylinderRepo.UpdateCylinderStatus(tx, identifier, movement.FromStatus, movement.ToStatus); err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			return nil, ErrStaleStatus
		}
		return nil, fmt.Errorf("failed to update cylinder status: %w", err)
	}

	if _, err := s.movementRepo.CreateMovement(tx, movement); err != nil {
		return nil, fmt.Errorf("failed to create cylinder movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status change: %w", err)
	}
	return movement, nil
}

func (s *movementService) GetMovements(identifier, movementType *string, startDate, endDate *time.Time, page, pageSize int) ([]models.CylinderMovement, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	var canonical *string
	if identifier != nil && *identifier != "" {
		id := qr.DeriveFullIdentifier(*identifier)
		canonical = &id
	}

	movements, totalCount, err := s.movementRepo.GetMovements(canonical, movementType, startDate, endDate, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get movements: %w", err)
	}
	return movements, totalCount, nil
}
