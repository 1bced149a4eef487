package dto

import "github.com/shopspring/decimal"

// ReportFilter is bound from the query string of the report endpoints.
type ReportFilter struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to"   validate:"omitempty,datetime=2006-01-02"`
}

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SalesReportResponse struct {
	From            string                     `json:"from"`
	To              string                     `json:"to"`
	SaleCount       int                        `json:"sale_count"`
	TotalRevenue    decimal.Decimal            `json:"total_revenue"`
	TotalDiscount   decimal.Decimal            `json:"total_discount"`
	TotalExpenses   decimal.Decimal            `json:"total_expenses"`
	NetRevenue      decimal.Decimal            `json:"net_revenue"`
	ByPaymentMethod map[string]decimal.Decimal `json:"by_payment_method"`
	TopProducts     []TopProduct               `json:"top_products"`
}

type SettingsResponse struct {
	Theme       string `json:"theme"`
	CompanyName string `json:"company_name"`
	LastBackup  string `json:"last_backup,omitempty"`
}

type UpdateSettingsRequest struct {
	Theme       string `json:"theme"        validate:"omitempty,oneof=light dark"`
	CompanyName string `json:"company_name" validate:"omitempty,min=1,max=100"`
}
