package service

import (
	"sort"
	"time"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/ledger"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/txn"
)

// InventoryService defines the business logic contract for stock movements.
type InventoryService interface {
	RecordMovement(actorID, actorName string, req dto.RecordMovementRequest) (*dto.MovementResponse, error)
	ListMovements(filter dto.MovementFilter) ([]dto.MovementResponse, error)
	ProductHistory(productID string, sinceDays int) ([]dto.MovementResponse, error)
}

type inventoryService struct {
	coordinator *txn.Coordinator
	movements   repository.MovementRepository
	ledger      *ledger.Engine
}

func NewInventoryService(coordinator *txn.Coordinator, movements repository.MovementRepository, eng *ledger.Engine) InventoryService {
	return &inventoryService{coordinator: coordinator, movements: movements, ledger: eng}
}

func (s *inventoryService) RecordMovement(actorID, actorName string, req dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	m, err := s.coordinator.RecordMovement(txn.MovementRequest{
		ProductID: req.ProductID,
		Type:      model.MovementType(req.Type),
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Reference: req.Reference,
		Date:      req.Date,
		ActorID:   actorID,
		ActorName: actorName,
	})
	if err != nil {
		return nil, err
	}
	return movementToResponse(m), nil
}

// ListMovements returns movements newest first with optional filters.
func (s *inventoryService) ListMovements(filter dto.MovementFilter) ([]dto.MovementResponse, error) {
	movements, err := s.movements.All()
	if err != nil {
		return nil, err
	}
	var cutoff time.Time
	if filter.SinceDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -filter.SinceDays)
	}
	matched := make([]model.Movement, 0, len(movements))
	for _, m := range movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && string(m.MovementType) != filter.Type {
			continue
		}
		if !cutoff.IsZero() && m.CreatedAt.Before(cutoff) {
			continue
		}
		matched = append(matched, m)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	resp := make([]dto.MovementResponse, len(matched))
	for i := range matched {
		resp[i] = *movementToResponse(&matched[i])
	}
	return resp, nil
}

func (s *inventoryService) ProductHistory(productID string, sinceDays int) ([]dto.MovementResponse, error) {
	history, err := s.ledger.ProductMovementHistory(productID, sinceDays)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovementResponse, len(history))
	for i := range history {
		resp[i] = *movementToResponse(&history[i])
	}
	return resp, nil
}

func movementToResponse(m *model.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		MovementType:     string(m.MovementType),
		Quantity:         m.Quantity,
		Unit:             string(m.Unit),
		UnitPrice:        m.UnitPrice,
		TotalValue:       m.TotalValue,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		ReferenceType:    m.ReferenceType,
		ReferenceNumber:  m.ReferenceNumber,
		Reason:           m.Reason,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt.Format(time.RFC3339),
	}
}
