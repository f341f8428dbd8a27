package models

import (
	"strings"
	"time"
)

// Invoice represents a billing document owned by this installation.
// Derived amounts (subtotal, discount, tax, total) are never stored;
// they are recomputed from Items by the calculation service at read time.
type Invoice struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber string     `gorm:"size:50;not null;uniqueIndex" json:"invoice_number"` // e.g. INV-0001
	ClientID      string     `gorm:"size:36;index" json:"client_id"`                     // weak reference, may be dangling
	Currency      string     `gorm:"size:3;not null;default:'TND'" json:"currency"`
	Items         []LineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	TaxRate       float64    `json:"tax_rate"` // invoice-level tax percent, 0..100
	IsPaid        bool       `json:"is_paid"`
	Note          string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ReceiptNumber derives the receipt number shown on payment receipts.
func (i *Invoice) ReceiptNumber() string {
	return strings.Replace(i.InvoiceNumber, "INV-", "REC-", 1)
}

// LineItem is one billable row on an invoice. Items are exclusively owned
// by their invoice and deleted with it.
type LineItem struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	InvoiceID    string  `gorm:"size:36;index;not null" json:"invoice_id"`
	Position     int     `gorm:"not null;default:0" json:"position"` // display order only
	Name         string  `gorm:"size:255" json:"name"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
	PricePerUnit float64 `gorm:"not null" json:"price_per_unit"`
	Discount     float64 `json:"discount"` // line discount percent, 0..100
	Taxable      bool    `json:"taxable"`  // stored; totals currently use the invoice-level rate only
}
