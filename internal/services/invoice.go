package services

import (
	"errors"

	"github.com/ttrabelsi/facturier/internal/models"
)

// Validation errors reported at save time. The save is rejected and the
// document left unmodified.
var (
	ErrClientRequired = errors.New("a client must be selected")
	ErrNoItems        = errors.New("an invoice needs at least one item")
)

// InvoiceService encapsulates invoice calculation rules.
// All methods are pure functions over the invoice's line items: totals are
// recomputed on every call and never persisted, so stored data cannot
// drift from the items it was derived from. Results are full precision;
// rounding to two decimals happens at display time only.
type InvoiceService struct{}

func NewInvoiceService() *InvoiceService { return &InvoiceService{} }

// LineAmount returns the extended price of one line after its own discount:
// quantity * unit price * (1 - discount/100).
func (s *InvoiceService) LineAmount(it models.LineItem) float64 {
	return float64(it.Quantity) * it.PricePerUnit * (1 - it.Discount/100)
}

// Subtotal sums pre-discount extended prices over all items.
func (s *InvoiceService) Subtotal(items []models.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.PricePerUnit
	}
	return sum
}

// TotalDiscount sums each line's discount amount, computed from that
// line's own discount percent.
func (s *InvoiceService) TotalDiscount(items []models.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += float64(it.Quantity) * it.PricePerUnit * it.Discount / 100
	}
	return sum
}

// TaxAmount applies the invoice-level rate to the post-discount base,
// not the raw subtotal.
func (s *InvoiceService) TaxAmount(items []models.LineItem, taxRate float64) float64 {
	return (s.Subtotal(items) - s.TotalDiscount(items)) * taxRate / 100
}

// Totals bundles every derived amount for one invoice.
type Totals struct {
	Subtotal float64
	Discount float64
	Tax      float64
	Total    float64
}

// Totals computes all derived amounts for an invoice.
// A nil invoice or an empty item list yields all zeros.
func (s *InvoiceService) Totals(inv *models.Invoice) Totals {
	if inv == nil {
		return Totals{}
	}
	sub := s.Subtotal(inv.Items)
	disc := s.TotalDiscount(inv.Items)
	tax := s.TaxAmount(inv.Items, inv.TaxRate)
	return Totals{
		Subtotal: sub,
		Discount: disc,
		Tax:      tax,
		Total:    sub - disc + tax,
	}
}

// ValidateForSave rejects invoices the form would refuse to save:
// a client must be selected and at least one item present.
func (s *InvoiceService) ValidateForSave(inv *models.Invoice) error {
	if inv == nil || inv.ClientID == "" {
		return ErrClientRequired
	}
	if len(inv.Items) == 0 {
		return ErrNoItems
	}
	return nil
}
