// Package ledger computes derived financial and inventory facts by scanning
// the event collections (sales, payments, movements). It is a pure read-side
// projection: no running totals are stored, no results are cached across
// calls, and the event collections it reads are never mutated. Correctness
// over speed is the deliberate tradeoff — ledger sizes are small at
// single-business desktop scale.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
)

// Balance is the derived account state for one customer. Outstanding may be
// negative, signifying overpayment — valid, not an error.
type Balance struct {
	TotalDebt     decimal.Decimal `json:"total_debt"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	Outstanding   decimal.Decimal `json:"outstanding_balance"`
}

// StockCheck is the result of reconciling a product's cached quantity
// against its movement ledger.
type StockCheck struct {
	ProductID      string `json:"product_id"`
	CachedQuantity int    `json:"cached_quantity"`
	LedgerQuantity int    `json:"ledger_quantity"`
	Movements      int    `json:"movements"`
	Consistent     bool   `json:"consistent"`
}

// Engine derives aggregates from the ledger collections.
type Engine struct {
	sales     repository.SaleRepository
	payments  repository.PaymentRepository
	movements repository.MovementRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
}

// NewEngine wires the engine to its read-side repositories.
func NewEngine(
	sales repository.SaleRepository,
	payments repository.PaymentRepository,
	movements repository.MovementRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
) *Engine {
	return &Engine{
		sales:     sales,
		payments:  payments,
		movements: movements,
		customers: customers,
		products:  products,
	}
}

// CustomerBalance derives one customer's debt position: total of their
// Credit (Account) sales, total of their payments, and the difference.
// Full re-scan on every call.
func (e *Engine) CustomerBalance(customerID string) (Balance, error) {
	sales, err := e.sales.All()
	if err != nil {
		return Balance{}, err
	}
	payments, err := e.payments.All()
	if err != nil {
		return Balance{}, err
	}
	return balanceFrom(customerID, sales, payments), nil
}

func balanceFrom(customerID string, sales []model.Sale, payments []model.Payment) Balance {
	b := Balance{
		TotalDebt:     decimal.Zero,
		TotalPayments: decimal.Zero,
	}
	for _, s := range sales {
		if s.CustomerID == customerID && s.PaymentMethod == model.PaymentOnAccount {
			b.TotalDebt = b.TotalDebt.Add(s.Total)
		}
	}
	for _, p := range payments {
		if p.CustomerID == customerID {
			b.TotalPayments = b.TotalPayments.Add(p.Amount)
		}
	}
	b.Outstanding = b.TotalDebt.Sub(b.TotalPayments)
	return b
}

// AllCustomerBalances derives the balance of every customer in one pass over
// the ledgers. Results are identical to calling CustomerBalance per customer;
// the batch form only exists so table rendering does not re-read the sales
// file once per row.
func (e *Engine) AllCustomerBalances() (map[string]Balance, error) {
	customers, err := e.customers.All()
	if err != nil {
		return nil, err
	}
	sales, err := e.sales.All()
	if err != nil {
		return nil, err
	}
	payments, err := e.payments.All()
	if err != nil {
		return nil, err
	}
	balances := make(map[string]Balance, len(customers))
	for _, c := range customers {
		balances[c.ID] = balanceFrom(c.ID, sales, payments)
	}
	return balances, nil
}

// ProductMovementHistory returns a product's movements newest first,
// optionally windowed to the last sinceDays days (0 = all history).
func (e *Engine) ProductMovementHistory(productID string, sinceDays int) ([]model.Movement, error) {
	movements, err := e.movements.All()
	if err != nil {
		return nil, err
	}
	var history []model.Movement
	var cutoff time.Time
	if sinceDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -sinceDays)
	}
	for _, m := range movements {
		if m.ProductID != productID {
			continue
		}
		if sinceDays > 0 && m.CreatedAt.Before(cutoff) {
			continue
		}
		history = append(history, m)
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
	return history, nil
}

// CustomerPaymentHistory returns a customer's payments newest first.
func (e *Engine) CustomerPaymentHistory(customerID string) ([]model.Payment, error) {
	payments, err := e.payments.All()
	if err != nil {
		return nil, err
	}
	var history []model.Payment
	for _, p := range payments {
		if p.CustomerID == customerID {
			history = append(history, p)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
	return history, nil
}

// VerifyProductStock reconciles a product's cached quantity against its
// movement ledger. The ledger quantity is the NewQuantity of the most recent
// movement — the authoritative record of where stock should stand. A
// divergence is detected, reported, and never repaired here; repair is a
// deliberate operator decision.
func (e *Engine) VerifyProductStock(productID string) (StockCheck, error) {
	product, err := e.products.FindByID(productID)
	if err != nil {
		return StockCheck{}, err
	}
	history, err := e.ProductMovementHistory(productID, 0)
	if err != nil {
		return StockCheck{}, err
	}
	check := StockCheck{
		ProductID:      productID,
		CachedQuantity: product.Quantity,
		Movements:      len(history),
	}
	if len(history) == 0 {
		// No movements recorded yet: the cached quantity is the initial
		// stock and there is nothing to diverge from.
		check.LedgerQuantity = product.Quantity
		check.Consistent = true
		return check, nil
	}
	check.LedgerQuantity = history[0].NewQuantity
	check.Consistent = check.LedgerQuantity == check.CachedQuantity
	return check, nil
}
