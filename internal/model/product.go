package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is the selling unit of a product.
type Unit string

const (
	UnitEach  Unit = "Each"
	UnitBox   Unit = "Box"
	UnitKg    Unit = "Kg"
	UnitLiter Unit = "Liter"
	UnitPair  Unit = "Pair"
	UnitSet   Unit = "Set"
)

// ValidUnit reports whether u is one of the known selling units.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitEach, UnitBox, UnitKg, UnitLiter, UnitPair, UnitSet:
		return true
	}
	return false
}

// Product is a catalog item. Quantity is a cached derived value: the
// authoritative stock history lives in the movements ledger, and the
// transaction coordinator is the only writer that keeps the two consistent.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode,omitempty"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
	MinQuantity  int             `json:"min_quantity"`
	Unit         Unit            `json:"unit"`
	// ExpiryDate is an ISO date (2006-01-02); empty when the product does not expire.
	ExpiryDate string    `json:"expiry_date,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (p Product) RecordID() string { return p.ID }

// DaysUntilExpiry returns the whole days between now and the expiry date.
// ok is false when the product has no (or an unparseable) expiry date.
func (p Product) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if p.ExpiryDate == "" {
		return 0, false
	}
	exp, err := time.ParseInLocation("2006-01-02", p.ExpiryDate, now.Location())
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(exp.Sub(today).Hours() / 24), true
}
