// Package txn orchestrates multi-collection writes for composite operations.
// No atomic multi-file transaction exists over flat JSON collections, so
// each protocol fixes a write order and compensates partial failure
// explicitly instead of relying on rollback.
package txn

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/storage"
)

// ConsistencyEvent describes a detected-but-unrepaired cross-collection
// inconsistency. These are reported and logged, never thrown, and never
// block the operation that detected them.
type ConsistencyEvent struct {
	Op        string
	SaleID    string
	ProductID string
	Detail    string
	Time      time.Time
}

// ConsistencyReporter receives consistency events. The default reporter
// logs them; tests install their own to assert on the protocol.
type ConsistencyReporter interface {
	ReportConsistency(ev ConsistencyEvent)
}

type logReporter struct{ log zerolog.Logger }

func (r logReporter) ReportConsistency(ev ConsistencyEvent) {
	r.log.Error().
		Str("op", ev.Op).
		Str("sale_id", ev.SaleID).
		Str("product_id", ev.ProductID).
		Str("detail", ev.Detail).
		Msg("consistency error detected (not repaired)")
}

// NewLogReporter returns a ConsistencyReporter that writes structured log
// events.
func NewLogReporter(log zerolog.Logger) ConsistencyReporter {
	return logReporter{log: log}
}

// MovementRequest is a manual stock movement entry.
//
// Quantity semantics depend on Type: for Stock In/Out/Transfer/Damaged/
// Expired it is the positive magnitude to move; for Adjustment it is the
// absolute target quantity, and the stored movement quantity becomes
// target − previous (possibly negative).
type MovementRequest struct {
	ProductID string
	Type      model.MovementType
	Quantity  int
	Reason    string
	Reference string
	// Date is an optional ISO date for backdated entries; empty = today.
	Date      string
	ActorID   string
	ActorName string
}

// Coordinator executes the composite write protocols: sale completion and
// manual inventory movement.
type Coordinator struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	movements repository.MovementRepository
	ids       *storage.IDGenerator
	log       zerolog.Logger
	reporter  ConsistencyReporter
}

// NewCoordinator wires a Coordinator. reporter may be nil, in which case
// consistency events are only logged.
func NewCoordinator(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	movements repository.MovementRepository,
	ids *storage.IDGenerator,
	log zerolog.Logger,
	reporter ConsistencyReporter,
) *Coordinator {
	if reporter == nil {
		reporter = NewLogReporter(log)
	}
	return &Coordinator{
		products:  products,
		sales:     sales,
		movements: movements,
		ids:       ids,
		log:       log,
		reporter:  reporter,
	}
}

// CompleteSale runs the sale completion protocol:
//
//  1. Validate — structural checks on the sale and every item; fails closed
//     before any write.
//  2. ReserveStock — every requested quantity must be covered by current
//     stock; the error names the first insufficient product.
//  3. DeductStock — decremented quantities computed in memory only.
//  4. AppendSale — persist the sale; failure aborts the whole operation.
//  5. PersistStock — persist the decremented products. Failure here leaves a
//     sale recorded against undeducted stock: reported as a consistency
//     event, not rolled back.
//  6. AppendMovements — one "out" movement per item. Failure is a warning
//     only; the sale is already committed and the movement ledger is
//     diagnostic, not operational.
//
// The asymmetry between steps 4/5 (hard) and 6 (soft) is deliberate.
// Fills in ID, InvoiceNumber, and CreatedAt when the caller left them empty.
func (c *Coordinator) CompleteSale(sale *model.Sale) (*model.Sale, error) {
	// 1. Validate
	if err := validateSale(sale); err != nil {
		return nil, err
	}

	// 2. ReserveStock
	products, err := c.products.All()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(products)) // product id → index
	for i := range products {
		byID[products[i].ID] = i
	}
	for _, item := range sale.Items {
		i, ok := byID[item.ProductID]
		if !ok {
			return nil, &storage.Error{Kind: storage.KindValidation, Op: "complete_sale",
				File: storage.ProductsFile,
				Msg:  "product not found: " + item.ProductName}
		}
		if products[i].Quantity < item.Quantity {
			return nil, &storage.Error{Kind: storage.KindValidation, Op: "complete_sale",
				File: storage.ProductsFile,
				Msg: fmt.Sprintf("insufficient stock for %s: available %d, required %d",
					products[i].Name, products[i].Quantity, item.Quantity)}
		}
	}

	// 3. DeductStock (in memory)
	now := time.Now()
	type deducted struct {
		index    int
		previous int
	}
	var touched []deducted
	for _, item := range sale.Items {
		i := byID[item.ProductID]
		touched = append(touched, deducted{index: i, previous: products[i].Quantity})
		products[i].Quantity -= item.Quantity
		products[i].UpdatedAt = now
	}

	if sale.ID == "" {
		sale.ID = c.ids.NewID()
	}
	if sale.InvoiceNumber == "" {
		sale.InvoiceNumber = c.ids.NewInvoiceNumber()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = now
	}

	// 4. AppendSale — hard fail, nothing else written yet
	if err := c.sales.Append(sale); err != nil {
		return nil, err
	}

	// 5. PersistStock — failure is a consistency event, not a rollback
	if err := c.products.ReplaceAll(products); err != nil {
		c.reporter.ReportConsistency(ConsistencyEvent{
			Op:     "complete_sale",
			SaleID: sale.ID,
			Detail: "sale persisted but stock deduction failed: " + err.Error(),
			Time:   time.Now(),
		})
	}

	// 6. AppendMovements — soft fail
	batch := make([]model.Movement, 0, len(sale.Items))
	for k, item := range sale.Items {
		d := touched[k]
		batch = append(batch, model.Movement{
			ID:               c.ids.NewID(),
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			MovementType:     model.MovementOut,
			Quantity:         item.Quantity,
			Unit:             item.Unit,
			UnitPrice:        item.UnitPrice,
			TotalValue:       item.TotalPrice,
			PreviousQuantity: d.previous,
			NewQuantity:      d.previous - item.Quantity,
			ReferenceType:    "sale",
			ReferenceID:      sale.ID,
			ReferenceNumber:  sale.InvoiceNumber,
			Reason:           "Sale to " + sale.CustomerName,
			CreatedBy:        sale.CreatedBy,
			CreatedAt:        time.Now(),
		})
	}
	if err := c.movements.AppendAll(batch); err != nil {
		c.log.Warn().Str("sale_id", sale.ID).Err(err).
			Msg("failed to create movement records for sale; movement history will be incomplete")
	}

	c.log.Info().
		Str("sale_id", sale.ID).
		Str("invoice", sale.InvoiceNumber).
		Int("items", len(sale.Items)).
		Msg("sale completed")
	return sale, nil
}

func validateSale(sale *model.Sale) error {
	fail := func(msg string) error {
		return &storage.Error{Kind: storage.KindValidation, Op: "complete_sale",
			File: storage.SalesFile, Msg: msg}
	}
	if len(sale.Items) == 0 {
		return fail("sale must contain at least one item")
	}
	if !model.ValidPaymentMethod(sale.PaymentMethod) {
		return fail("invalid payment method: " + string(sale.PaymentMethod))
	}
	if !sale.Total.IsPositive() {
		return fail("total amount must be greater than zero")
	}
	hundred := decimal.NewFromInt(100)
	for i, item := range sale.Items {
		if item.Quantity < 1 {
			return fail(fmt.Sprintf("item %d: quantity must be at least 1", i+1))
		}
		if !item.UnitPrice.IsPositive() {
			return fail(fmt.Sprintf("item %d: unit price must be greater than zero", i+1))
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(hundred) {
			return fail(fmt.Sprintf("item %d: discount percentage must be between 0 and 100", i+1))
		}
	}
	return nil
}

// RecordMovement runs the manual inventory movement protocol: compute the
// quantity arithmetic for the movement type, append the movement, then
// update the product. Unlike the sale path this one compensates: a single
// product and a single movement make rollback cheap and safe, so a failed
// product write restores the original quantity and informs the caller.
func (c *Coordinator) RecordMovement(req MovementRequest) (*model.Movement, error) {
	fail := func(msg string) error {
		return &storage.Error{Kind: storage.KindValidation, Op: "record_movement",
			File: storage.MovementsFile, Msg: msg}
	}
	if !model.ValidManualMovementType(req.Type) {
		return nil, fail("invalid movement type: " + string(req.Type))
	}
	if req.Reason == "" {
		return nil, fail("a reason for the movement is required")
	}
	if req.Quantity < 0 || (req.Quantity == 0 && req.Type != model.MovementAdjustment) {
		return nil, fail("quantity must be greater than 0")
	}

	product, err := c.products.FindByID(req.ProductID)
	if err != nil {
		return nil, err
	}

	// Quantity arithmetic by movement type.
	previous := product.Quantity
	quantity := req.Quantity
	var newQuantity int
	switch req.Type {
	case model.MovementStockIn:
		newQuantity = previous + quantity
	case model.MovementStockOut, model.MovementTransfer, model.MovementDamaged, model.MovementExpired:
		if previous < quantity {
			return nil, fail("not enough stock available")
		}
		newQuantity = previous - quantity
	case model.MovementAdjustment:
		// The request carries the absolute target; the stored quantity is
		// the delta, which may be negative.
		newQuantity = req.Quantity
		quantity = newQuantity - previous
	}

	now := time.Now()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	movement := &model.Movement{
		ID:               c.ids.NewID(),
		ProductID:        product.ID,
		ProductName:      product.Name,
		ProductBarcode:   product.Barcode,
		MovementType:     req.Type,
		Quantity:         quantity,
		Unit:             product.Unit,
		UnitPrice:        product.BuyingPrice,
		TotalValue:       product.BuyingPrice.Mul(decimal.NewFromInt(int64(abs(quantity)))),
		PreviousQuantity: previous,
		NewQuantity:      newQuantity,
		ReferenceType:    "adjustment",
		ReferenceNumber:  "ADJ-" + now.Format("20060102150405"),
		MovementDate:     date,
		Reason:           req.Reason,
		CreatedBy:        req.ActorID,
		CreatedByName:    req.ActorName,
		CreatedAt:        now,
	}
	if req.Reference != "" {
		movement.ReferenceNumber = req.Reference
	}

	// Persist order: movement first, then product.
	if err := c.movements.Append(movement); err != nil {
		return nil, err
	}

	product.Quantity = newQuantity
	product.UpdatedAt = now
	if err := c.products.Update(product); err != nil {
		// Compensate: restore the original in-memory quantity and inform
		// the caller. The appended movement stays; the ledger records the
		// attempt even though the cached quantity was never updated.
		product.Quantity = previous
		c.log.Error().Str("product_id", product.ID).Err(err).
			Msg("movement persisted but product update failed; quantity restored in memory")
		return nil, err
	}

	c.log.Info().
		Str("product_id", product.ID).
		Str("type", string(req.Type)).
		Int("quantity", quantity).
		Int("new_quantity", newQuantity).
		Msg("inventory movement recorded")
	return movement, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
