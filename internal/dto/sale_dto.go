package dto

import "github.com/shopspring/decimal"

type SaleItemRequest struct {
	ProductID       string          `json:"product_id"       validate:"required"`
	Quantity        int             `json:"quantity"         validate:"required,min=1"`
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"min=0,max=100"`
}

type CompleteSaleRequest struct {
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=Cash 'Credit Card' 'Credit (Account)'"`
	// CustomerID is required for Credit (Account) sales, optional otherwise.
	CustomerID string          `json:"customer_id"    validate:"omitempty"`
	Discount   decimal.Decimal `json:"discount"       validate:"min=0"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	From       string `form:"from"  validate:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"    validate:"omitempty,datetime=2006-01-02"`
	CustomerID string `form:"customer_id"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=1000"`
}

type SaleItemResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Unit            string          `json:"unit"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CreatedBy     string             `json:"created_by"`
	CreatedAt     string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int            `json:"total"`
}
