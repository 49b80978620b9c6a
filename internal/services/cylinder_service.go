package services

import (
	"database/sql"
	"errors"
	"fmt"

	"lpg_inventory_backend/internal/models"
	"lpg_inventory_backend/internal/repositories"
	"lpg_inventory_backend/pkg/qr"
	"lpg_inventory_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Cylinder ---
var (
	ErrCylinderNotFound   = errors.New("cylinder not found")
	ErrIdentifierExists   = errors.New("cylinder identifier already exists")
	ErrCylinderValidation = errors.New("cylinder data validation error")
	ErrCylinderInUse      = errors.New("cylinder cannot be deleted as movements reference it")
)

// --- Cylinder DTOs ---
type CreateCylinderRequest struct {
	QRPayload string          `json:"qr_payload" binding:"required"` // raw scanned or typed text
	WeightKg  decimal.Decimal `json:"weight_kg" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Supplier  *string         `json:"supplier"`
}

type UpdateCylinderRequest struct {
	WeightKg *decimal.Decimal `json:"weight_kg"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Supplier *string          `json:"supplier"`
}

// LookupResult is returned by scan/manual-entry lookups.
type LookupResult struct {
	Identifier string           `json:"identifier"`
	Found      bool             `json:"found"`
	Cylinder   *models.Cylinder `json:"cylinder,omitempty"`
}

// --- CylinderService Interface ---
type CylinderService interface {
	CreateCylinder(req CreateCylinderRequest) (*models.Cylinder, error)
	GetCylinderByID(cylinderID int64) (*models.Cylinder, error)
	GetCylinderByIdentifier(identifier string) (*models.Cylinder, error)
	GetCylinders(status, supplier, search *string, page, pageSize int) ([]models.Cylinder, int, error)
	UpdateCylinder(cylinderID int64, req UpdateCylinderRequest) (*models.Cylinder, error)
	DeleteCylinder(cylinderID int64) error
	Lookup(raw string) (*LookupResult, error)
	GetStatusSummary() ([]models.StatusCount, error)
}

// --- cylinderService Implementation ---
type cylinderService struct {
	cylinderRepo repositories.CylinderRepository
	db           *sql.DB
}

// NewCylinderService creates a new instance of CylinderService.
func NewCylinderService(repo repositories.CylinderRepository, db *sql.DB) CylinderService {
	return &cylinderService{
		cylinderRepo: repo,
		db:           db,
	}
}

func validateCylinderAttributes(weightKg, unitCost decimal.Decimal) error {
	if !models.IsStandardWeight(weightKg) {
		return fmt.Errorf("%w: weight %s kg is not a standard cylinder size", ErrCylinderValidation, weightKg.String())
	}
	if unitCost.IsNegative() {
		return fmt.Errorf("%w: unit cost cannot be negative", ErrCylinderValidation)
	}
	return nil
}

// CreateCylinder derives the canonical identifier from the raw QR payload and
// registers the cylinder with status "available". Identifier derivation is
// deterministic and idempotent so the unique constraint can catch duplicates.
func (s *cylinderService) CreateCylinder(req CreateCylinderRequest) (*models.Cylinder, error) {
	normalized := qr.Normalize(req.QRPayload)
	if utils.IsEmpty(normalized) {
		return nil, fmt.Errorf("%w: QR payload contains no usable code", ErrCylinderValidation)
	}
	if err := validateCylinderAttributes(req.WeightKg, req.UnitCost); err != nil {
		return nil, err
	}

	cylinder := &models.Cylinder{
		Identifier: qr.DeriveFullIdentifier(normalized),
		QRCode:     normalized,
		WeightKg:   req.WeightKg,
		UnitCost:   req.UnitCost,
		Supplier:   req.Supplier,
		Status:     models.StatusAvailable,
	}

	id, err := s.cylinderRepo.CreateCylinder(s.db, cylinder)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrIdentifierExists, cylinder.Identifier)
		}
		return nil, fmt.Errorf("failed to create cylinder in repository: %w", err)
	}
	return s.cylinderRepo.GetCylinderByID(id)
}

func (s *cylinderService) GetCylinderByID(cylinderID int64) (*models.Cylinder, error) {
	cylinder, err := s.cylinderRepo.GetCylinderByID(cylinderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCylinderNotFound
		}
		return nil, fmt.Errorf("failed to get cylinder by ID: %w", err)
	}
	return cylinder, nil
}

func (s *cylinderService) GetCylinderByIdentifier(identifier string) (*models.Cylinder, error) {
	cylinder, err := s.cylinderRepo.GetCylinderByIdentifier(qr.DeriveFullIdentifier(identifier))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCylinderNotFound
		}
		return nil, fmt.Errorf("failed to get cylinder by identifier: %w", err)
	}
	return cylinder, nil
}

func (s *cylinderService) GetCylinders(status, supplier, search *string, page, pageSize int) ([]models.Cylinder, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if status != nil && *status != "" && !models.CylinderStatus(*status).IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown status filter %q", ErrCylinderValidation, *status)
	}

	cylinders, totalCount, err := s.cylinderRepo.GetCylinders(status, supplier, search, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get cylinders: %w", err)
	}
	return cylinders, totalCount, nil
}

func (s *cylinderService) UpdateCylinder(cylinderID int64, req UpdateCylinderRequest) (*models.Cylinder, error) {
	cylinder, err := s.cylinderRepo.GetCylinderByID(cylinderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCylinderNotFound
		}
		return nil, fmt.Errorf("failed to find cylinder for update: %w", err)
	}

	if req.WeightKg != nil {
		cylinder.WeightKg = *req.WeightKg
	}
	if req.UnitCost != nil {
		cylinder.UnitCost = *req.UnitCost
	}
	if req.Supplier != nil {
		cylinder.Supplier = req.Supplier
	}
	if err := validateCylinderAttributes(cylinder.WeightKg, cylinder.UnitCost); err != nil {
		return nil, err
	}

	if err := s.cylinderRepo.UpdateCylinder(s.db, cylinder); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCylinderNotFound
		}
		return nil, fmt.Errorf("failed to update cylinder in repository: %w", err)
	}
	return s.cylinderRepo.GetCylinderByID(cylinderID)
}

func (s *cylinderService) DeleteCylinder(cylinderID int64) error {
	_, err := s.cylinderRepo.GetCylinderByID(cylinderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCylinderNotFound
		}
		return fmt.Errorf("failed to find cylinder for deletion: %w", err)
	}

	err = s.cylinderRepo.DeleteCylinder(s.db, cylinderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCylinderNotFound
		}
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return ErrCylinderInUse
		}
		return fmt.Errorf("failed to delete cylinder: %w", err)
	}
	return nil
}

// Lookup normalizes raw scanned or typed text and resolves it to a cylinder,
// matching first on the full identifier and then on the stored QR payload.
// A miss is not an error: the result reports Found=false so scan flows can
// offer registration.
func (s *cylinderService) Lookup(raw string) (*LookupResult, error) {
	normalized := qr.Normalize(raw)
	if utils.IsEmpty(normalized) {
		return nil, fmt.Errorf("%w: scanned text contains no usable code", ErrCylinderValidation)
	}
	identifier := qr.DeriveFullIdentifier(normalized)

	cylinder, err := s.cylinderRepo.GetCylinderByIdentifier(identifier)
	if err != nil && errors.Is(err, repositories.ErrNotFound) {
		cylinder, err = s.cylinderRepo.GetCylinderByQRCode(normalized)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &LookupResult{Identifier: identifier, Found: false}, nil
		}
		return nil, fmt.Errorf("failed to look up cylinder: %w", err)
	}

	return &LookupResult{Identifier: cylinder.Identifier, Found: true, Cylinder: cylinder}, nil
}

func (s *cylinderService) GetStatusSummary() ([]models.StatusCount, error) {
	summary, err := s.cylinderRepo.GetStatusSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to get status summary: %w", err)
	}
	return summary, nil
}
