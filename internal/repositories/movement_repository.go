package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lpg_inventory_backend/internal/models"
)

// MovementRepository defines the interface for cylinder movement database
// operations. Movements are append-only: there are no update or delete
// methods, by design.
type MovementRepository interface {
	CreateMovement(executor SQLExecutor, movement *models.CylinderMovement) (int64, error)
	// RestoreMovement inserts a movement preserving its original timestamps,
	// skipping rows already present. Used only by backup restore.
	RestoreMovement(executor SQLExecutor, movement *models.CylinderMovement) error
	GetMovements(identifier *string, movementType *string, startDate, endDate *time.Time, page, pageSize int) ([]models.CylinderMovement, int, error)
	GetAllMovements() ([]models.CylinderMovement, error)
}

type movementRepository struct {
	db *sql.DB
}

// NewMovementRepository creates a new instance of MovementRepository.
func NewMovementRepository(db *sql.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) CreateMovement(executor SQLExecutor, movement *models.CylinderMovement) (int64, error) {
	query := `INSERT INTO cylinder_movements
	          (product_identifier, from_status, to_status, movement_type, reason, notes, reference_number, recorded_by, occurred_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`
	currentTime := time.Now()
	if movement.OccurredAt.IsZero() {
		movement.OccurredAt = currentTime
	}
	movement.CreatedAt = currentTime

	var recordedBy sql.NullInt64
	if movement.RecordedBy != nil {
		recordedBy = sql.NullInt64{Int64: *movement.RecordedBy, Valid: true}
	}

	err := executor.QueryRow(query,
		movement.ProductIdentifier, movement.FromStatus, movement.ToStatus, movement.MovementType,
		movement.Reason, movement.Notes, movement.ReferenceNumber, recordedBy,
		movement.OccurredAt, movement.CreatedAt,
	).Scan(&movement.ID)

	if err != nil {
		return 0, fmt.Errorf("%w: creating cylinder movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *movementRepository) RestoreMovement(executor SQLExecutor, movement *models.CylinderMovement) error {
	query := `INSERT INTO cylinder_movements
	          (product_identifier, from_status, to_status, movement_type, reason, notes, reference_number, recorded_by, occurred_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (product_identifier, occurred_at, movement_type) DO NOTHING`
	createdAt := movement.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := executor.Exec(query,
		movement.ProductIdentifier, movement.FromStatus, movement.ToStatus, movement.MovementType,
		movement.Reason, movement.Notes, movement.ReferenceNumber, movement.RecordedBy,
		movement.OccurredAt, createdAt,
	)
	if err != nil {
		return fmt.Errorf("%w: restoring cylinder movement: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *movementRepository) GetMovements(identifier *string, movementType *string, startDate, endDate *time.Time, page, pageSize int) ([]models.CylinderMovement, int, error) {
	movements := []models.CylinderMovement{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    m.id, m.product_identifier, m.from_status, m.to_status, m.movement_type,
	    m.reason, m.notes, m.reference_number, m.recorded_by, m.occurred_at, m.created_at,
	    c.id AS cylinder_id, c.status AS cylinder_status,
	    COUNT(*) OVER() AS total_count
	  FROM cylinder_movements m
	  JOIN cylinders c ON m.product_identifier = c.identifier`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if identifier != nil && *identifier != "" {
		conditions = append(conditions, fmt.Sprintf("m.product_identifier = $%d", argCount))
		args = append(args, *identifier)
		argCount++
	}
	if movementType != nil && *movementType != "" {
		conditions = append(conditions, fmt.Sprintf("m.movement_type = $%d", argCount))
		args = append(args, *movementType)
		argCount++
	}
	if startDate != nil {
		conditions = append(conditions, fmt.Sprintf("m.occurred_at >= $%d", argCount))
		args = append(args, *startDate)
		argCount++
	}
	if endDate != nil {
		conditions = append(conditions, fmt.Sprintf("m.occurred_at <= $%d", argCount))
		args = append(args, *endDate)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY m.occurred_at DESC, m.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting cylinder movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var movement models.CylinderMovement
		var recordedBy sql.NullInt64
		var cylinderID int64
		var cylinderStatus models.CylinderStatus

		if err := rows.Scan(
			&movement.ID, &movement.ProductIdentifier, &movement.FromStatus, &movement.ToStatus, &movement.MovementType,
			&movement.Reason, &movement.Notes, &movement.ReferenceNumber, &recordedBy,
			&movement.OccurredAt, &movement.CreatedAt,
			&cylinderID, &cylinderStatus,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning cylinder movement: %v", ErrDatabaseError, err)
		}

		if recordedBy.Valid {
			movement.RecordedBy = &recordedBy.Int64
		}
		movement.Cylinder = &models.Cylinder{
			ID:         cylinderID,
			Identifier: movement.ProductIdentifier,
			Status:     cylinderStatus,
		}

		movements = append(movements, movement)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating cylinder movements: %v", ErrDatabaseError, err)
	}

	return movements, totalCount, nil
}

func (r *movementRepository) GetAllMovements() ([]models.CylinderMovement, error) {
	movements := []models.CylinderMovement{}
	query := `SELECT id, product_identifier, from_status, to_status, movement_type,
	                 reason, notes, reference_number, recorded_by, occurred_at, created_at
	          FROM cylinder_movements
	          ORDER BY occurred_at, id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting all cylinder movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var movement models.CylinderMovement
		var recordedBy sql.NullInt64
		if err := rows.Scan(
			&movement.ID, &movement.ProductIdentifier, &movement.FromStatus, &movement.ToStatus, &movement.MovementType,
			&movement.Reason, &movement.Notes, &movement.ReferenceNumber, &recordedBy,
			&movement.OccurredAt, &movement.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning cylinder movement: %v", ErrDatabaseError, err)
		}
		if recordedBy.Valid {
			movement.RecordedBy = &recordedBy.Int64
		}
		movements = append(movements, movement)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating cylinder movements: %v", ErrDatabaseError, err)
	}
	return movements, nil
}
