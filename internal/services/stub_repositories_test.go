package services

import (
	"database/sql"
	"time"

	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/repositories"
)

// stubTx satisfies dbTx without touching a database; the stub repositories
// ignore the executor they are handed.
type stubTx struct {
	committed  bool
	rolledBack bool
}

func (t *stubTx) Exec(string, ...interface{}) (sql.Result, error) { return nil, nil }
func (t *stubTx) QueryRow(string, ...interface{}) *sql.Row        { return nil }
func (t *stubTx) Query(string, ...interface{}) (*sql.Rows, error) { return nil, nil }
func (t *stubTx) Commit() error                                   { t.committed = true; return nil }
func (t *stubTx) Rollback() error                                 { t.rolledBack = true; return nil }

type stubTxBeginner struct {
	beginErr error
	tx       *stubTx
}

func (b *stubTxBeginner) BeginTx() (dbTx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	b.tx = &stubTx{}
	return b.tx, nil
}

// stubCylinderRepo is an in-memory CylinderRepository for service tests.
type stubCylinderRepo struct {
	nextID          int64
	byID            map[int64]*models.Cylinder
	createErr       error
	updateStatusErr error
	deleteErr       error
}

func newStubCylinderRepo() *stubCylinderRepo {
	return &stubCylinderRepo{byID: map[int64]*models.Cylinder{}}
}

func (r *stubCylinderRepo) add(c models.Cylinder) *models.Cylinder {
	r.nextID++
	c.ID = r.nextID
	r.byID[c.ID] = &c
	return &c
}

func (r *stubCylinderRepo) CreateCylinder(_ repositories.SQLExecutor, cylinder *models.Cylinder) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Identifier == cylinder.Identifier {
			return 0, repositories.ErrDuplicateKey
		}
	}
	stored := r.add(*cylinder)
	cylinder.ID = stored.ID
	return stored.ID, nil
}

func (r *stubCylinderRepo) GetCylinderByID(id int64) (*models.Cylinder, error) {
	if c, ok := r.byID[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *stubCylinderRepo) GetCylinderByIdentifier(identifier string) (*models.Cylinder, error) {
	for _, c := range r.byID {
		if c.Identifier == identifier {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubCylinderRepo) GetCylinderByQRCode(qrCode string) (*models.Cylinder, error) {
	for _, c := range r.byID {
		if c.QRCode == qrCode {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubCylinderRepo) GetCylinders(status *string, _ *string, _ *string, _, _ int) ([]models.Cylinder, int, error) {
	result := []models.Cylinder{}
	for _, c := range r.byID {
		if status != nil && *status != "" && string(c.Status) != *status {
			continue
		}
		result = append(result, *c)
	}
	return result, len(result), nil
}

func (r *stubCylinderRepo) UpdateCylinder(_ repositories.SQLExecutor, cylinder *models.Cylinder) error {
	if _, ok := r.byID[cylinder.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *cylinder
	r.byID[cylinder.ID] = &copied
	return nil
}

func (r *stubCylinderRepo) UpdateCylinderStatus(_ repositories.SQLExecutor, identifier string, fromStatus, toStatus models.CylinderStatus) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	for _, c := range r.byID {
		if c.Identifier == identifier && c.Status == fromStatus {
			c.Status = toStatus
			return nil
		}
	}
	return repositories.ErrStaleStatus
}

func (r *stubCylinderRepo) UpsertCylinder(_ repositories.SQLExecutor, cylinder *models.Cylinder) error {
	for _, existing := range r.byID {
		if existing.Identifier == cylinder.Identifier {
			id := existing.ID
			copied := *cylinder
			copied.ID = id
			r.byID[id] = &copied
			return nil
		}
	}
	r.add(*cylinder)
	return nil
}

func (r *stubCylinderRepo) DeleteCylinder(_ repositories.SQLExecutor, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCylinderRepo) GetStatusSummary() ([]models.StatusCount, error) {
	counts := map[models.CylinderStatus]int64{}
	for _, c := range r.byID {
		counts[c.Status]++
	}
	summary := []models.StatusCount{}
	for _, status := range models.AllStatuses {
		if counts[status] > 0 {
			summary = append(summary, models.StatusCount{Status: status, Count: counts[status]})
		}
	}
	return summary, nil
}

func (r *stubCylinderRepo) GetAllCylinders() ([]models.Cylinder, error) {
	result := []models.Cylinder{}
	for _, c := range r.byID {
		result = append(result, *c)
	}
	return result, nil
}

// stubMovementRepo is an in-memory MovementRepository for service tests.
type stubMovementRepo struct {
	nextID    int64
	movements []models.CylinderMovement
}

func (r *stubMovementRepo) CreateMovement(_ repositories.SQLExecutor, movement *models.CylinderMovement) (int64, error) {
	r.nextID++
	movement.ID = r.nextID
	r.movements = append(r.movements, *movement)
	return movement.ID, nil
}

func (r *stubMovementRepo) RestoreMovement(_ repositories.SQLExecutor, movement *models.CylinderMovement) error {
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *stubMovementRepo) GetMovements(identifier *string, _ *string, _, _ *time.Time, _, _ int) ([]models.CylinderMovement, int, error) {
	result := []models.CylinderMovement{}
	for _, m := range r.movements {
		if identifier != nil && *identifier != "" && m.ProductIdentifier != *identifier {
			continue
		}
		result = append(result, m)
	}
	return result, len(result), nil
}

func (r *stubMovementRepo) GetAllMovements() ([]models.CylinderMovement, error) {
	return append([]models.CylinderMovement{}, r.movements...), nil
}
