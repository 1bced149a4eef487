package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement. The capitalized types are entered
// manually through the inventory screen; "in"/"out" are system-generated
// (sale deductions and automatic restocks).
type MovementType string

const (
	MovementStockIn    MovementType = "Stock In"
	MovementStockOut   MovementType = "Stock Out"
	MovementAdjustment MovementType = "Adjustment"
	MovementTransfer   MovementType = "Transfer"
	MovementDamaged    MovementType = "Damaged"
	MovementExpired    MovementType = "Expired"
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
)

// ValidManualMovementType reports whether t can be entered through the
// inventory movement screen.
func ValidManualMovementType(t MovementType) bool {
	switch t {
	case MovementStockIn, MovementStockOut, MovementAdjustment,
		MovementTransfer, MovementDamaged, MovementExpired:
		return true
	}
	return false
}

// Outbound reports whether t decreases stock by its stored quantity.
func (t MovementType) Outbound() bool {
	switch t {
	case MovementStockOut, MovementTransfer, MovementDamaged, MovementExpired, MovementOut:
		return true
	}
	return false
}

// Movement is the authoritative source of truth for stock history: an
// immutable append-only record of one stock change. Product.Quantity is only
// a cached projection of these entries.
//
// Quantity sign convention: Stock In / in / Stock Out / out / Transfer /
// Damaged / Expired store a positive magnitude (direction comes from the
// type); Adjustment stores the signed delta target − previous, which may be
// negative. Report code depends on this convention.
type Movement struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	ProductBarcode   string          `json:"product_barcode,omitempty"`
	MovementType     MovementType    `json:"movement_type"`
	Quantity         int             `json:"quantity"`
	Unit             Unit            `json:"unit,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalValue       decimal.Decimal `json:"total_value"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
	// ReferenceType is "sale" for sale-driven deductions, "adjustment" for
	// manual entries.
	ReferenceType   string `json:"reference_type"`
	ReferenceID     string `json:"reference_id,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	// MovementDate is an ISO date (2006-01-02); manual entries may be backdated.
	MovementDate  string    `json:"movement_date,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedByName string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (m Movement) RecordID() string { return m.ID }

// SignedDelta is the movement's effect on stock: positive for inbound,
// negative for outbound, the stored (already signed) value for adjustments.
func (m Movement) SignedDelta() int {
	if m.MovementType == MovementAdjustment {
		return m.Quantity
	}
	if m.MovementType.Outbound() {
		return -m.Quantity
	}
	return m.Quantity
}
