package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Masai2005/zero-app/internal/dto"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

// Notification retention and rule thresholds.
const (
	notificationRetentionDays = 30
	expiryWarningDays         = 7
	trendWindowDays           = 30
	trendDropThreshold        = -20 // percent
)

// NotificationService evaluates alert rules over current data and manages
// the resulting notifications.
type NotificationService interface {
	// Generate runs every rule, deduplicates against existing notifications
	// by (type, reference_id), and prunes entries older than the retention
	// window. Idempotent: a second run over unchanged data creates nothing.
	Generate(userID string) (*dto.GenerateResult, error)
	List(userID string) (*dto.NotificationListResponse, error)
	MarkRead(id string) error
	MarkAllRead(userID string) error
}

type notificationService struct {
	repo     repository.NotificationRepository
	products repository.ProductRepository
	sales    repository.SaleRepository
	ids      *storage.IDGenerator
	log      zerolog.Logger
	now      func() time.Time
}

func NewNotificationService(
	repo repository.NotificationRepository,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	ids *storage.IDGenerator,
	log zerolog.Logger,
) NotificationService {
	return &notificationService{
		repo:     repo,
		products: products,
		sales:    sales,
		ids:      ids,
		log:      log,
		now:      time.Now,
	}
}

func (s *notificationService) Generate(userID string) (*dto.GenerateResult, error) {
	existing, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	now := s.now()

	// Prune first so an alert older than the retention window can re-fire
	// if its condition still holds.
	cutoff := now.AddDate(0, 0, -notificationRetentionDays)
	kept := make([]model.Notification, 0, len(existing))
	pruned := 0
	for _, n := range existing {
		if n.CreatedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, n)
	}

	seen := make(map[string]bool, len(kept))
	for _, n := range kept {
		seen[n.DedupKey()] = true
	}

	candidates, err := s.evaluateRules(now)
	if err != nil {
		return nil, err
	}

	created, skipped := 0, 0
	for _, c := range candidates {
		if seen[c.DedupKey()] {
			skipped++
			continue
		}
		c.ID = s.ids.NewID()
		c.UserID = userID
		c.Read = false
		c.CreatedAt = now
		kept = append(kept, c)
		seen[c.DedupKey()] = true
		created++
	}

	if err := s.repo.ReplaceAll(kept); err != nil {
		return nil, err
	}
	s.log.Info().
		Int("created", created).
		Int("skipped", skipped).
		Int("pruned", pruned).
		Msg("notification generation pass complete")
	return &dto.GenerateResult{Created: created, Skipped: skipped, Pruned: pruned}, nil
}

// evaluateRules returns notification candidates without IDs or timestamps.
func (s *notificationService) evaluateRules(now time.Time) ([]model.Notification, error) {
	products, err := s.products.All()
	if err != nil {
		return nil, err
	}

	var out []model.Notification
	for _, p := range products {
		switch {
		case p.Quantity == 0:
			out = append(out, model.Notification{
				Type:        "out_of_stock",
				RuleID:      "out_of_stock",
				ReferenceID: p.ID,
				Title:       "Out of Stock",
				Message:     fmt.Sprintf("%s is out of stock", p.Name),
				Priority:    model.PriorityCritical,
			})
		case p.Quantity <= p.MinQuantity:
			out = append(out, model.Notification{
				Type:        "low_stock",
				RuleID:      "low_stock",
				ReferenceID: p.ID,
				Title:       "Low Stock",
				Message: fmt.Sprintf("%s is running low: %d left (minimum %d)",
					p.Name, p.Quantity, p.MinQuantity),
				Priority: model.PriorityMedium,
			})
		}

		if days, ok := p.DaysUntilExpiry(now); ok {
			switch {
			case days < 0:
				out = append(out, model.Notification{
					Type:        "expired",
					RuleID:      "expired",
					ReferenceID: p.ID,
					Title:       "Product Expired",
					Message:     fmt.Sprintf("%s expired on %s", p.Name, p.ExpiryDate),
					Priority:    model.PriorityCritical,
				})
			case days <= expiryWarningDays:
				out = append(out, model.Notification{
					Type:        "expiring_soon",
					RuleID:      "expiring_soon",
					ReferenceID: p.ID,
					Title:       "Expiring Soon",
					Message:     fmt.Sprintf("%s expires in %d day(s)", p.Name, days),
					Priority:    model.PriorityHigh,
				})
			}
		}
	}

	trend, err := s.salesTrend(now)
	if err != nil {
		return nil, err
	}
	if trend != nil {
		out = append(out, *trend)
	}
	return out, nil
}

// salesTrend compares revenue over the last trend window with the window
// before it and alerts when the drop exceeds the threshold. The reference id
// is the month key, so at most one trend alert fires per month.
func (s *notificationService) salesTrend(now time.Time) (*model.Notification, error) {
	sales, err := s.sales.All()
	if err != nil {
		return nil, err
	}
	windowStart := now.AddDate(0, 0, -trendWindowDays)
	previousStart := now.AddDate(0, 0, -2*trendWindowDays)

	current, previous := decimal.Zero, decimal.Zero
	for _, sale := range sales {
		switch {
		case !sale.CreatedAt.Before(windowStart):
			current = current.Add(sale.Total)
		case !sale.CreatedAt.Before(previousStart):
			previous = previous.Add(sale.Total)
		}
	}
	if previous.IsZero() {
		return nil, nil
	}
	changePct := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	if changePct.GreaterThan(decimal.NewFromInt(trendDropThreshold)) {
		return nil, nil
	}
	return &model.Notification{
		Type:        "sales_trend_down",
		RuleID:      "sales_trend_down",
		ReferenceID: now.Format("2006-01"),
		Title:       "Sales Trending Down",
		Message: fmt.Sprintf("Sales dropped %s%% over the last %d days",
			changePct.Abs().Round(1).String(), trendWindowDays),
		Priority: model.PriorityMedium,
	}, nil
}

func (s *notificationService) List(userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	data := make([]dto.NotificationResponse, 0, len(notifications))
	unread := 0
	for _, n := range notifications {
		if userID != "" && n.UserID != "" && n.UserID != userID {
			continue
		}
		if !n.Read {
			unread++
		}
		data = append(data, dto.NotificationResponse{
			ID:          n.ID,
			Type:        n.Type,
			ReferenceID: n.ReferenceID,
			Title:       n.Title,
			Message:     n.Message,
			Priority:    n.Priority,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.NotificationListResponse{Data: data, Unread: unread}, nil
}

func (s *notificationService) MarkRead(id string) error {
	notifications, err := s.repo.All()
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID == id {
			notifications[i].Read = true
			return s.repo.ReplaceAll(notifications)
		}
	}
	return &storage.Error{Kind: storage.KindValidation, Op: "mark_read",
		File: storage.NotificationsFile, Msg: "notification not found: " + id}
}

func (s *notificationService) MarkAllRead(userID string) error {
	notifications, err := s.repo.All()
	if err != nil {
		return err
	}
	for i := range notifications {
		if userID == "" || notifications[i].UserID == "" || notifications[i].UserID == userID {
			notifications[i].Read = true
		}
	}
	return s.repo.ReplaceAll(notifications)
}
