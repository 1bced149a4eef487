package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required,min=2,max=100"`
	Barcode      string          `json:"barcode"       validate:"omitempty,alphanum,min=3,max=50"`
	BuyingPrice  decimal.Decimal `json:"buying_price"  validate:"min=0"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"required,gt=0"`
	Quantity     int             `json:"quantity"      validate:"min=0"`
	MinQuantity  int             `json:"min_quantity"  validate:"min=0"`
	Unit         string          `json:"unit"          validate:"required,oneof=Each Box Kg Liter Pair Set"`
	// ExpiryDate is YYYY-MM-DD; empty when the product does not expire.
	ExpiryDate string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateProductRequest struct {
	Name         string           `json:"name"          validate:"omitempty,min=2,max=100"`
	Barcode      *string          `json:"barcode"       validate:"omitempty"`
	BuyingPrice  *decimal.Decimal `json:"buying_price"  validate:"omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty"`
	MinQuantity  *int             `json:"min_quantity"  validate:"omitempty"`
	Unit         string           `json:"unit"          validate:"omitempty,oneof=Each Box Kg Liter Pair Set"`
	ExpiryDate   *string          `json:"expiry_date"   validate:"omitempty"`
}

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Search   string `form:"search"`
	Barcode  string `form:"barcode"`
	LowStock bool   `form:"low_stock"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode,omitempty"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
	MinQuantity  int             `json:"min_quantity"`
	Unit         string          `json:"unit"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// StockCheckResponse reports cached quantity against the movement ledger for
// GET /v1/products/:id/consistency.
type StockCheckResponse struct {
	ProductID      string `json:"product_id"`
	CachedQuantity int    `json:"cached_quantity"`
	LedgerQuantity int    `json:"ledger_quantity"`
	Movements      int    `json:"movements"`
	Consistent     bool   `json:"consistent"`
}
