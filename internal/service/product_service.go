package service

import (
	"strings"
	"time"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/ledger"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

// ProductService defines the business logic contract for the product catalog.
type ProductService interface {
	Create(req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(id string) (*dto.ProductResponse, error)
	GetByBarcode(barcode string) (*dto.ProductResponse, error)
	List(filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Update(id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(id string) error
	CheckConsistency(id string) (*dto.StockCheckResponse, error)
}

type productService struct {
	repo   repository.ProductRepository
	ledger *ledger.Engine
	ids    *storage.IDGenerator
}

func NewProductService(repo repository.ProductRepository, eng *ledger.Engine, ids *storage.IDGenerator) ProductService {
	return &productService{repo: repo, ledger: eng, ids: ids}
}

func (s *productService) Create(req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Barcode != "" {
		if existing, err := s.repo.FindByBarcode(req.Barcode); err == nil && existing != nil {
			return nil, &storage.Error{Kind: storage.KindValidation, Op: "create_product",
				File: storage.ProductsFile,
				Msg:  "barcode already in use by " + existing.Name}
		}
	}
	now := time.Now()
	p := &model.Product{
		ID:           s.ids.NewID(),
		Name:         req.Name,
		Barcode:      req.Barcode,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
		MinQuantity:  req.MinQuantity,
		Unit:         model.Unit(req.Unit),
		ExpiryDate:   req.ExpiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) List(filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		if filter.Barcode != "" && p.Barcode != filter.Barcode {
			continue
		}
		if filter.LowStock && p.Quantity > p.MinQuantity {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Barcode), needle) {
				continue
			}
		}
		resp = append(resp, *productToResponse(p))
	}
	return resp, nil
}

func (s *productService) Update(id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Barcode != nil {
		p.Barcode = *req.Barcode
	}
	if req.BuyingPrice != nil {
		p.BuyingPrice = *req.BuyingPrice
	}
	if req.SellingPrice != nil {
		if !req.SellingPrice.IsPositive() {
			return nil, &storage.Error{Kind: storage.KindValidation, Op: "update_product",
				File: storage.ProductsFile, Msg: "selling price must be greater than zero"}
		}
		p.SellingPrice = *req.SellingPrice
	}
	if req.MinQuantity != nil {
		if *req.MinQuantity < 0 {
			return nil, &storage.Error{Kind: storage.KindValidation, Op: "update_product",
				File: storage.ProductsFile, Msg: "minimum quantity cannot be negative"}
		}
		p.MinQuantity = *req.MinQuantity
	}
	if req.Unit != "" {
		p.Unit = model.Unit(req.Unit)
	}
	if req.ExpiryDate != nil {
		p.ExpiryDate = *req.ExpiryDate
	}
	// Quantity is deliberately not updatable here; stock changes go through
	// the movement endpoint so the ledger stays authoritative.
	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *productService) CheckConsistency(id string) (*dto.StockCheckResponse, error) {
	check, err := s.ledger.VerifyProductStock(id)
	if err != nil {
		return nil, err
	}
	return &dto.StockCheckResponse{
		ProductID:      check.ProductID,
		CachedQuantity: check.CachedQuantity,
		LedgerQuantity: check.LedgerQuantity,
		Movements:      check.Movements,
		Consistent:     check.Consistent,
	}, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Barcode:      p.Barcode,
		BuyingPrice:  p.BuyingPrice,
		SellingPrice: p.SellingPrice,
		Quantity:     p.Quantity,
		MinQuantity:  p.MinQuantity,
		Unit:         string(p.Unit),
		ExpiryDate:   p.ExpiryDate,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}
