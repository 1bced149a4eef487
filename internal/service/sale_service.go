package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
	"github.com/Masai2005/zero-app/internal/txn"
)

// WalkInCustomer is the display name used when a sale has no customer record.
const WalkInCustomer = "Walk-in Customer"

// SaleService defines the business logic contract for sales.
type SaleService interface {
	Complete(actor string, req dto.CompleteSaleRequest) (*dto.SaleResponse, error)
	GetByID(id string) (*dto.SaleResponse, error)
	List(filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	coordinator *txn.Coordinator
	sales       repository.SaleRepository
	products    repository.ProductRepository
	customers   repository.CustomerRepository
}

func NewSaleService(
	coordinator *txn.Coordinator,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
) SaleService {
	return &saleService{
		coordinator: coordinator,
		sales:       sales,
		products:    products,
		customers:   customers,
	}
}

// Complete resolves the cart against the catalog, prices every line, and
// hands the assembled sale to the transaction coordinator.
func (s *saleService) Complete(actor string, req dto.CompleteSaleRequest) (*dto.SaleResponse, error) {
	method := model.PaymentMethod(req.PaymentMethod)

	customerName := WalkInCustomer
	if req.CustomerID != "" {
		customer, err := s.customers.FindByID(req.CustomerID)
		if err != nil {
			return nil, err
		}
		customerName = customer.FullName()
	} else if method == model.PaymentOnAccount {
		return nil, &storage.Error{Kind: storage.KindValidation, Op: "complete_sale",
			File: storage.SalesFile,
			Msg:  "credit sales require a customer account"}
	}

	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	itemDiscounts := decimal.Zero
	items := make([]model.SaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		p, err := s.products.FindByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		gross := p.SellingPrice.Mul(qty)
		discount := gross.Mul(line.DiscountPercent).Div(hundred).Round(2)
		items = append(items, model.SaleItem{
			ProductID:       p.ID,
			ProductName:     p.Name,
			Unit:            p.Unit,
			Quantity:        line.Quantity,
			UnitPrice:       p.SellingPrice,
			DiscountPercent: line.DiscountPercent,
			DiscountAmount:  discount,
			TotalPrice:      gross.Sub(discount),
		})
		subtotal = subtotal.Add(gross)
		itemDiscounts = itemDiscounts.Add(discount)
	}

	totalDiscount := itemDiscounts.Add(req.Discount)
	total := subtotal.Sub(totalDiscount)
	if total.IsNegative() {
		return nil, &storage.Error{Kind: storage.KindValidation, Op: "complete_sale",
			File: storage.SalesFile,
			Msg:  "discount exceeds the sale subtotal"}
	}

	sale := &model.Sale{
		CustomerID:    req.CustomerID,
		CustomerName:  customerName,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      totalDiscount,
		Total:         total,
		PaymentMethod: method,
		CreatedBy:     actor,
	}
	completed, err := s.coordinator.CompleteSale(sale)
	if err != nil {
		return nil, err
	}
	return saleToResponse(completed), nil
}

func (s *saleService) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(id)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

// List returns sales newest first, filtered by date window and customer.
func (s *saleService) List(filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, err := s.sales.All()
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	if filter.From != "" {
		from, _ = time.Parse("2006-01-02", filter.From)
	}
	if filter.To != "" {
		to, _ = time.Parse("2006-01-02", filter.To)
		to = to.Add(24 * time.Hour) // inclusive end date
	}

	matched := make([]model.Sale, 0, len(sales))
	for _, sale := range sales {
		if filter.CustomerID != "" && sale.CustomerID != filter.CustomerID {
			continue
		}
		if !from.IsZero() && sale.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !sale.CreatedAt.Before(to) {
			continue
		}
		matched = append(matched, sale)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	total := len(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}
	data := make([]dto.SaleResponse, len(matched))
	for i := range matched {
		data[i] = *saleToResponse(&matched[i])
	}
	return &dto.SaleListResponse{Data: data, Total: total}, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = dto.SaleItemResponse{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Unit:            string(item.Unit),
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
			TotalPrice:      item.TotalPrice,
		}
	}
	return &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		CustomerID:    sale.CustomerID,
		CustomerName:  sale.CustomerName,
		Items:         items,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: string(sale.PaymentMethod),
		CreatedBy:     sale.CreatedBy,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}
}
