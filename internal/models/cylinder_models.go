package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CylinderStatus is the single current state of a physical cylinder.
// A cylinder holds exactly one status at any time; the lifecycle engine is
// the only component allowed to authorize a change between statuses.
type CylinderStatus string

const (
	StatusAvailable   CylinderStatus = "available"
	StatusSold        CylinderStatus = "sold"
	StatusMaintenance CylinderStatus = "maintenance"
	StatusDamaged     CylinderStatus = "damaged"
	StatusMissing     CylinderStatus = "missing"
)

// AllStatuses lists every valid cylinder status.
var AllStatuses = []CylinderStatus{
	StatusAvailable,
	StatusSold,
	StatusMaintenance,
	StatusDamaged,
	StatusMissing,
}

// IsValid reports whether s is a member of the status enum.
func (s CylinderStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusMaintenance, StatusDamaged, StatusMissing:
		return true
	}
	return false
}

// Movement type classifications. Free-form strings are accepted by the
// storage layer; these constants cover the classifications the UI uses.
const (
	MovementStatusChange = "status_change"
	MovementSale         = "sale"
	MovementPurchase     = "purchase"
	MovementMaintenance  = "maintenance"
	MovementDamage       = "damage"
	MovementFound        = "found"
	MovementLost         = "lost"
)

// standardWeightsKg is the enumerated set of cylinder sizes sold in retail.
var standardWeightsKg = []string{"5.5", "6", "12.5", "15", "19", "45", "50"}

// IsStandardWeight reports whether w matches one of the standard cylinder sizes.
func IsStandardWeight(w decimal.Decimal) bool {
	for _, s := range standardWeightsKg {
		if w.Equal(decimal.RequireFromString(s)) {
			return true
		}
	}
	return false
}

// Cylinder represents one physical LPG tank tracked as an inventory unit.
type Cylinder struct {
	ID         int64           `json:"id" db:"id"`
	Identifier string          `json:"identifier" db:"identifier"` // canonical, LPG- prefixed
	QRCode     string          `json:"qr_code" db:"qr_code"`       // normalized scan payload
	WeightKg   decimal.Decimal `json:"weight_kg" db:"weight_kg"`
	UnitCost   decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	Supplier   *string         `json:"supplier,omitempty" db:"supplier"`
	Status     CylinderStatus  `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// CylinderMovement is the append-only audit record of a single status
// transition. Movements are never updated or deleted; the newest movement's
// to_status always equals the cylinder's current status.
type CylinderMovement struct {
	ID                int64          `json:"id" db:"id"`
	ProductIdentifier string         `json:"product_identifier" db:"product_identifier"`
	FromStatus        CylinderStatus `json:"from_status" db:"from_status"`
	ToStatus          CylinderStatus `json:"to_status" db:"to_status"`
	MovementType      string         `json:"movement_type" db:"movement_type"`
	Reason            *string        `json:"reason,omitempty" db:"reason"`
	Notes             *string        `json:"notes,omitempty" db:"notes"`
	ReferenceNumber   *string        `json:"reference_number,omitempty" db:"reference_number"`
	RecordedBy        *int64         `json:"recorded_by,omitempty" db:"recorded_by"`
	OccurredAt        time.Time      `json:"occurred_at" db:"occurred_at"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	Cylinder          *Cylinder      `json:"cylinder,omitempty"` // For joining with Cylinder
}

// StatusCount is one row of the dashboard status summary.
type StatusCount struct {
	Status CylinderStatus `json:"status"`
	Count  int64          `json:"count"`
}
