package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Backup ---
var (
	ErrBackupValidation = errors.New("backup snapshot validation error")
)

// --- BackupService Interface ---
type BackupService interface {
	ExportSnapshot() (*models.BackupSnapshot, error)
	RestoreSnapshot(snapshot *models.BackupSnapshot) error
}

// --- backupService Implementation ---
type backupService struct {
	cylinderRepo repositories.CylinderRepository
	movementRepo repositories.MovementRepository
	db           txBeginner
}

// NewBackupService creates a new instance of BackupService.
func NewBackupService(cylinderRepo repositories.CylinderRepository, movementRepo repositories.MovementRepository, db *sql.DB) BackupService {
	return &backupService{
		cylinderRepo: cylinderRepo,
		movementRepo: movementRepo,
		db:           sqlTxBeginner{db: db},
	}
}

// ExportSnapshot dumps the full inventory and movement history into a
// JSON-serializable snapshot.
func (s *backupService) ExportSnapshot() (*models.BackupSnapshot, error) {
	cylinders, err := s.cylinderRepo.GetAllCylinders()
	if err != nil {
		return nil, fmt.Errorf("failed to export cylinders: %w", err)
	}
	movements, err := s.movementRepo.GetAllMovements()
	if err != nil {
		return nil, fmt.Errorf("failed to export movements: %w", err)
	}

	return &models.BackupSnapshot{
		SnapshotID: uuid.NewString(),
		Version:    models.BackupSnapshotVersion,
		CreatedAt:  time.Now(),
		Cylinders:  cylinders,
		Movements:  movements,
	}, nil
}

// RestoreSnapshot applies a snapshot transactionally: cylinders are upserted
// by identifier and movements are re-inserted with their original timestamps,
// skipping any already present. A snapshot must be self-contained: movements
// referencing a cylinder absent from the snapshot are rejected up front.
func (s *backupService) RestoreSnapshot(snapshot *models.BackupSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: empty snapshot", ErrBackupValidation)
	}
	if snapshot.Version != models.BackupSnapshotVersion {
		return fmt.Errorf("%w: unsupported snapshot version %d", ErrBackupValidation, snapshot.Version)
	}

	known := make(map[string]bool, len(snapshot.Cylinders))
	for _, cylinder := range snapshot.Cylinders {
		if cylinder.Identifier == "" {
			return fmt.Errorf("%w: cylinder with empty identifier", ErrBackupValidation)
		}
		if !cylinder.Status.IsValid() {
			return fmt.Errorf("%w: cylinder %s has unknown status %q", ErrBackupValidation, cylinder.Identifier, cylinder.Status)
		}
		known[cylinder.Identifier] = true
	}
	for _, movement := range snapshot.Movements {
		if !known[movement.ProductIdentifier] {
			return fmt.Errorf("%w: movement references unknown cylinder %s", ErrBackupValidation, movement.ProductIdentifier)
		}
	}

	tx, err := s.db.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to start restore transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range snapshot.Cylinders {
		if err := s.cylinderRepo.UpsertCylinder(tx, &snapshot.Cylinders[i]); err != nil {
			return fmt.Errorf("failed to restore cylinder %s: %w", snapshot.Cylinders[i].Identifier, err)
		}
	}
	for i := range snapshot.Movements {
		if err := s.movementRepo.RestoreMovement(tx, &snapshot.Movements[i]); err != nil {
			return fmt.Errorf("failed to restore movement for %s: %w", snapshot.Movements[i].ProductIdentifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}
