package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
)

// ReportService derives period summaries from the sales and expense
// collections. Read-only; never writes.
type ReportService interface {
	SalesSummary(filter dto.ReportFilter) (*dto.SalesReportResponse, error)
	// SalesInPeriod returns the raw sales for export rendering, oldest first.
	SalesInPeriod(filter dto.ReportFilter) ([]model.Sale, error)
}

type reportService struct {
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
}

func NewReportService(sales repository.SaleRepository, expenses repository.ExpenseRepository) ReportService {
	return &reportService{sales: sales, expenses: expenses}
}

const topProductLimit = 10

func (s *reportService) SalesSummary(filter dto.ReportFilter) (*dto.SalesReportResponse, error) {
	from, to := periodBounds(filter)

	sales, err := s.salesBetween(from, to)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.Zero
	totalDiscount := decimal.Zero
	byMethod := make(map[string]decimal.Decimal)
	type productAgg struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	perProduct := make(map[string]*productAgg)

	for _, sale := range sales {
		totalRevenue = totalRevenue.Add(sale.Total)
		totalDiscount = totalDiscount.Add(sale.Discount)
		method := string(sale.PaymentMethod)
		byMethod[method] = byMethod[method].Add(sale.Total)
		for _, item := range sale.Items {
			agg, ok := perProduct[item.ProductID]
			if !ok {
				agg = &productAgg{name: item.ProductName}
				perProduct[item.ProductID] = agg
			}
			agg.quantity += item.Quantity
			agg.revenue = agg.revenue.Add(item.TotalPrice)
		}
	}

	totalExpenses, err := s.expensesBetween(from, to)
	if err != nil {
		return nil, err
	}

	top := make([]dto.TopProduct, 0, len(perProduct))
	for id, agg := range perProduct {
		top = append(top, dto.TopProduct{
			ProductID: id,
			Name:      agg.name,
			Quantity:  agg.quantity,
			Revenue:   agg.revenue,
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Revenue.Equal(top[j].Revenue) {
			return top[i].Revenue.GreaterThan(top[j].Revenue)
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topProductLimit {
		top = top[:topProductLimit]
	}

	return &dto.SalesReportResponse{
		From:            from.Format("2006-01-02"),
		To:              to.AddDate(0, 0, -1).Format("2006-01-02"),
		SaleCount:       len(sales),
		TotalRevenue:    totalRevenue,
		TotalDiscount:   totalDiscount,
		TotalExpenses:   totalExpenses,
		NetRevenue:      totalRevenue.Sub(totalExpenses),
		ByPaymentMethod: byMethod,
		TopProducts:     top,
	}, nil
}

func (s *reportService) SalesInPeriod(filter dto.ReportFilter) ([]model.Sale, error) {
	from, to := periodBounds(filter)
	sales, err := s.salesBetween(from, to)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].CreatedAt.Before(sales[j].CreatedAt)
	})
	return sales, nil
}

// periodBounds resolves the filter into [from, to) — to is exclusive.
// Defaults to the last 30 days.
func periodBounds(filter dto.ReportFilter) (time.Time, time.Time) {
	now := time.Now()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if filter.To != "" {
		if t, err := time.ParseInLocation("2006-01-02", filter.To, now.Location()); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}
	from := to.AddDate(0, 0, -31)
	if filter.From != "" {
		if t, err := time.ParseInLocation("2006-01-02", filter.From, now.Location()); err == nil {
			from = t
		}
	}
	return from, to
}

func (s *reportService) salesBetween(from, to time.Time) ([]model.Sale, error) {
	all, err := s.sales.All()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Sale, 0, len(all))
	for _, sale := range all {
		if sale.CreatedAt.Before(from) || !sale.CreatedAt.Before(to) {
			continue
		}
		matched = append(matched, sale)
	}
	return matched, nil
}

func (s *reportService) expensesBetween(from, to time.Time) (decimal.Decimal, error) {
	expenses, err := s.expenses.All()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range expenses {
		d, err := time.ParseInLocation("2006-01-02", e.Date, from.Location())
		if err != nil {
			continue
		}
		if d.Before(from) || !d.Before(to) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}
