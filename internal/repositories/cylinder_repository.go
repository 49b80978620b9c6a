package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lpg_inventory_backend/internal/models"

	"github.com/lib/pq"
)

// CylinderRepository defines the interface for cylinder-related database operations.
type CylinderRepository interface {
	CreateCylinder(executor SQLExecutor, cylinder *models.Cylinder) (int64, error)
	GetCylinderByID(id int64) (*models.Cylinder, error)
	GetCylinderByIdentifier(identifier string) (*models.Cylinder, error)
	GetCylinderByQRCode(qrCode string) (*models.Cylinder, error)
	GetCylinders(status *string, supplier *string, search *string, page, pageSize int) ([]models.Cylinder, int, error)
	UpdateCylinder(executor SQLExecutor, cylinder *models.Cylinder) error
	// UpdateCylinderStatus applies a compare-and-swap status update: the row
	// is only changed when its persisted status still equals fromStatus.
	// Returns ErrStaleStatus when no row matched.
	UpdateCylinderStatus(executor SQLExecutor, identifier string, fromStatus, toStatus models.CylinderStatus) error
	UpsertCylinder(executor SQLExecutor, cylinder *models.Cylinder) error
	DeleteCylinder(executor SQLExecutor, id int64) error
	GetStatusSummary() ([]models.StatusCount, error)
	GetAllCylinders() ([]models.Cylinder, error)
}

type cylinderRepository struct {
	db *sql.DB
}

// NewCylinderRepository creates a new instance of CylinderRepository.
func NewCylinderRepository(db *sql.DB) CylinderRepository {
	return &cylinderRepository{db: db}
}

const cylinderColumns = `id, identifier, qr_code, weight_kg, unit_cost, supplier, status, created_at, updated_at`

func scanCylinder(row interface{ Scan(...interface{}) error }, c *models.Cylinder) error {
	return row.Scan(
		&c.ID, &c.Identifier, &c.QRCode, &c.WeightKg, &c.UnitCost,
		&c.Supplier, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *cylinderRepository) CreateCylinder(executor SQLExecutor, cylinder *models.Cylinder) (int64, error) {
	query := `INSERT INTO cylinders (identifier, qr_code, weight_kg, unit_cost, supplier, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	currentTime := time.Now()
	cylinder.CreatedAt = currentTime
	cylinder.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		cylinder.Identifier, cylinder.QRCode, cylinder.WeightKg, cylinder.UnitCost,
		cylinder.Supplier, cylinder.Status, currentTime, currentTime,
	).Scan(&cylinder.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: cylinder identifier '%s' already exists (constraint: %s)", ErrDuplicateKey, cylinder.Identifier, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating cylinder: %v", ErrDatabaseError, err)
	}
	return cylinder.ID, nil
}

func (r *cylinderRepository) GetCylinderByID(id int64) (*models.Cylinder, error) {
	cylinder := &models.Cylinder{}
	query := `SELECT ` + cylinderColumns + ` FROM cylinders WHERE id = $1`
	err := scanCylinder(r.db.QueryRow(query, id), cylinder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting cylinder by ID %d: %v", ErrDatabaseError, id, err)
	}
	return cylinder, nil
}

func (r *cylinderRepository) GetCylinderByIdentifier(identifier string) (*models.Cylinder, error) {
	cylinder := &models.Cylinder{}
	query := `SELECT ` + cylinderColumns + ` FROM cylinders WHERE identifier = $1`
	err := scanCylinder(r.db.QueryRow(query, identifier), cylinder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting cylinder by identifier %s: %v", ErrDatabaseError, identifier, err)
	}
	return cylinder, nil
}

func (r *cylinderRepository) GetCylinderByQRCode(qrCode string) (*models.Cylinder, error) {
	cylinder := &models.Cylinder{}
	query := `SELECT ` + cylinderColumns + ` FROM cylinders WHERE qr_code = $1`
	err := scanCylinder(r.db.QueryRow(query, qrCode), cylinder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting cylinder by QR code %s: %v", ErrDatabaseError, qrCode, err)
	}
	return cylinder, nil
}

func (r *cylinderRepository) GetCylinders(status *string, supplier *string, search *string, page, pageSize int) ([]models.Cylinder, int, error) {
	cylinders := []models.Cylinder{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + cylinderColumns + `, COUNT(*) OVER() AS total_count FROM cylinders`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if status != nil && *status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *status)
		argCount++
	}
	if supplier != nil && *supplier != "" {
		conditions = append(conditions, fmt.Sprintf("supplier = $%d", argCount))
		args = append(args, *supplier)
		argCount++
	}
	if search != nil && *search != "" {
		conditions = append(conditions, fmt.Sprintf("(identifier ILIKE $%d OR qr_code ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*search+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY identifier")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting cylinders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cylinder models.Cylinder
		if err := rows.Scan(
			&cylinder.ID, &cylinder.Identifier, &cylinder.QRCode, &cylinder.WeightKg, &cylinder.UnitCost,
			&cylinder.Supplier, &cylinder.Status, &cylinder.CreatedAt, &cylinder.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning cylinder: %v", ErrDatabaseError, err)
		}
		cylinders = append(cylinders, cylinder)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating cylinders: %v", ErrDatabaseError, err)
	}

	return cylinders, totalCount, nil
}

func (r *cylinderRepository) UpdateCylinder(executor SQLExecutor, cylinder *models.Cylinder) error {
	// Status is deliberately absent: status changes go through
	// UpdateCylinderStatus so every change carries a movement record.
	query := `UPDATE cylinders SET weight_kg = $1, unit_cost = $2, supplier = $3, updated_at = $4 WHERE id = $5`
	result, err := executor.Exec(query, cylinder.WeightKg, cylinder.UnitCost, cylinder.Supplier, time.Now(), cylinder.ID)
	if err != nil {
		return fmt.Errorf("%w: updating cylinder ID %d: %v", ErrDatabaseError, cylinder.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cylinderRepository) UpdateCylinderStatus(executor SQLExecutor, identifier string, fromStatus, toStatus models.CylinderStatus) error {
	query := `UPDATE cylinders SET status = $1, updated_at = $2 WHERE identifier = $3 AND status = $4`
	result, err := executor.Exec(query, toStatus, time.Now(), identifier, fromStatus)
	if err != nil {
		return fmt.Errorf("%w: updating status of cylinder %s: %v", ErrDatabaseError, identifier, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// Either the cylinder is gone or another writer moved it first.
		return ErrStaleStatus
	}
	return nil
}

func (r *cylinderRepository) UpsertCylinder(executor SQLExecutor, cylinder *models.Cylinder) error {
	query := `INSERT INTO cylinders (identifier, qr_code, weight_kg, unit_cost, supplier, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (identifier) DO UPDATE SET
	              qr_code = EXCLUDED.qr_code,
	              weight_kg = EXCLUDED.weight_kg,
	              unit_cost = EXCLUDED.unit_cost,
	              supplier = EXCLUDED.supplier,
	              status = EXCLUDED.status,
	              updated_at = EXCLUDED.updated_at`
	currentTime := time.Now()
	createdAt := cylinder.CreatedAt
	if createdAt.IsZero() {
		createdAt = currentTime
	}
	_, err := executor.Exec(query,
		cylinder.Identifier, cylinder.QRCode, cylinder.WeightKg, cylinder.UnitCost,
		cylinder.Supplier, cylinder.Status, createdAt, currentTime,
	)
	if err != nil {
		return fmt.Errorf("%w: upserting cylinder %s: %v", ErrDatabaseError, cylinder.Identifier, err)
	}
	return nil
}

func (r *cylinderRepository) DeleteCylinder(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM cylinders WHERE id = $1`, id)
	if err != nil {
		// Movements reference cylinders by identifier; deleting a cylinder
		// with history violates the foreign key.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: cylinder ID %d (constraint: %s)", ErrForeignKeyViolation, id, pqErr.Constraint)
		}
		return fmt.Errorf("%w: deleting cylinder ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cylinderRepository) GetStatusSummary() ([]models.StatusCount, error) {
	summary := []models.StatusCount{}
	query := `SELECT status, COUNT(*) FROM cylinders GROUP BY status ORDER BY status`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting status summary: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("%w: scanning status summary: %v", ErrDatabaseError, err)
		}
		summary = append(summary, sc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating status summary: %v", ErrDatabaseError, err)
	}
	return summary, nil
}

func (r *cylinderRepository) GetAllCylinders() ([]models.Cylinder, error) {
	cylinders := []models.Cylinder{}
	query := `SELECT ` + cylinderColumns + ` FROM cylinders ORDER BY identifier`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: getting all cylinders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cylinder models.Cylinder
		if err := rows.Scan(
			&cylinder.ID, &cylinder.Identifier, &cylinder.QRCode, &cylinder.WeightKg, &cylinder.UnitCost,
			&cylinder.Supplier, &cylinder.Status, &cylinder.CreatedAt, &cylinder.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning cylinder: %v", ErrDatabaseError, err)
		}
		cylinders = append(cylinders, cylinder)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating cylinders: %v", ErrDatabaseError, err)
	}
	return cylinders, nil
}
