package render

import (
	"reflect"
	"testing"
	"time"

	"github.com/ttrabelsi/facturier/internal/models"
)

func sampleInvoice() *models.Invoice {
	created := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return &models.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-0042",
		ClientID:      "c1",
		Currency:      "TND",
		TaxRate:       20,
		Items: []models.LineItem{
			{Name: "Logo design", Quantity: 2, PricePerUnit: 100, Discount: 10},
			{Name: "Hosting", Quantity: 1, PricePerUnit: 25},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func sampleClient() *models.Client {
	return &models.Client{ID: "c1", Name: "Acme SARL", Email: "billing@acme.tn"}
}

func sampleCompany() *models.CompanyInfo {
	return &models.CompanyInfo{Name: "Studio Trabelsi", Phone: "+216 20 000 000"}
}

func hasText(l Layout, value string) bool {
	for _, t := range l.Texts {
		if t.Value == value {
			return true
		}
	}
	return false
}

func hasBadge(l Layout, value string) bool {
	for _, b := range l.Badges {
		if b.Value == value {
			return true
		}
	}
	return false
}

func TestBuildInvoiceBasics(t *testing.T) {
	l := BuildInvoice(sampleInvoice(), sampleClient(), sampleCompany(), "en")
	for _, want := range []string{"INVOICE", "INV-0042", "Studio Trabelsi", "Acme SARL", "Logo design", "Hosting"} {
		if !hasText(l, want) {
			t.Fatalf("layout is missing %q", want)
		}
	}
	if l.Width != PageWidth {
		t.Fatalf("width = %v, want %v", l.Width, PageWidth)
	}
	if l.Height < PageMinHeight {
		t.Fatalf("height = %v, want at least %v", l.Height, PageMinHeight)
	}
}

func TestBuildInvoiceAmountsTwoDecimals(t *testing.T) {
	l := BuildInvoice(sampleInvoice(), sampleClient(), sampleCompany(), "en")
	// subtotal 225, discount 20, tax 41 (20% of 205), total 246.
	for _, want := range []string{"TND 225.00", "-TND 20.00", "TND 41.00", "TND 246.00"} {
		if !hasText(l, want) {
			t.Fatalf("layout is missing amount %q", want)
		}
	}
	if !hasBadge(l, "-10%") {
		t.Fatalf("expected a -10%% discount chip")
	}
	// Discounted line shows the original amount struck through.
	var struck bool
	for _, txt := range l.Texts {
		if txt.Strike && txt.Value == "TND 200.00" {
			struck = true
		}
	}
	if !struck {
		t.Fatalf("expected struck-through original amount TND 200.00")
	}
}

func TestBuildInvoiceTotalsVisibility(t *testing.T) {
	inv := sampleInvoice()
	inv.TaxRate = 0
	inv.Items = []models.LineItem{{Name: "Flat", Quantity: 1, PricePerUnit: 50}}
	l := BuildInvoice(inv, sampleClient(), sampleCompany(), "en")

	if hasText(l, "Subtotal") {
		t.Fatalf("subtotal line must be hidden without discount or tax")
	}
	if hasText(l, "Discount") {
		t.Fatalf("discount line must be hidden when zero")
	}
	for _, txt := range l.Texts {
		if len(txt.Value) >= 3 && txt.Value[:3] == "Tax" {
			t.Fatalf("tax line must be hidden at 0%%: %q", txt.Value)
		}
	}
	if !hasText(l, "Total") || !hasText(l, "TND 50.00") {
		t.Fatalf("final total line must always be present")
	}
}

func TestBuildInvoiceNoClientPlaceholder(t *testing.T) {
	l := BuildInvoice(sampleInvoice(), nil, sampleCompany(), "en")
	if !hasText(l, "No client selected") {
		t.Fatalf("expected explicit no-client placeholder")
	}
}

func TestBuildInvoiceNoItemsRow(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	l := BuildInvoice(inv, sampleClient(), sampleCompany(), "en")
	if !hasText(l, "No items added") {
		t.Fatalf("expected explicit no-items row")
	}
}

func TestBuildInvoiceUntitledItem(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = []models.LineItem{{Quantity: 1, PricePerUnit: 5}}
	l := BuildInvoice(inv, sampleClient(), sampleCompany(), "en")
	if !hasText(l, "Untitled") {
		t.Fatalf("unnamed items must render as Untitled")
	}
}

func TestBuildInvoiceFrench(t *testing.T) {
	l := BuildInvoice(sampleInvoice(), sampleClient(), sampleCompany(), "fr")
	for _, want := range []string{"FACTURE", "Sous-total", "Remise"} {
		if !hasText(l, want) {
			t.Fatalf("french layout is missing %q", want)
		}
	}
	if !hasText(l, "INV-0042   1 sur 1") {
		t.Fatalf("expected french page footer")
	}
}

func TestBuildInvoiceUnsupportedLanguageFallsBack(t *testing.T) {
	l := BuildInvoice(sampleInvoice(), sampleClient(), sampleCompany(), "es")
	if !hasText(l, "INVOICE") {
		t.Fatalf("unsupported language must fall back to default labels, never blanks")
	}
	for _, txt := range l.Texts {
		if txt.Value == "" {
			t.Fatalf("blank label rendered")
		}
	}
}

func TestBuildInvoiceNote(t *testing.T) {
	inv := sampleInvoice()
	inv.Note = "Payment due in 30 days.\nBank transfer preferred."
	l := BuildInvoice(inv, sampleClient(), sampleCompany(), "en")
	if !hasText(l, "Notes") && !hasText(l, "NOTES") {
		t.Fatalf("expected notes label")
	}
	if !hasText(l, "Payment due in 30 days.") || !hasText(l, "Bank transfer preferred.") {
		t.Fatalf("expected note lines")
	}
}

func TestBuildReceipt(t *testing.T) {
	l := BuildReceipt(sampleInvoice(), sampleClient(), sampleCompany(), "en")
	for _, want := range []string{"RECEIPT", "REC-0042", "RECEIVED FROM", "Amount Paid"} {
		if !hasText(l, want) {
			t.Fatalf("receipt layout is missing %q", want)
		}
	}
	if !hasBadge(l, "PAID IN FULL") {
		t.Fatalf("expected PAID IN FULL badge")
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := BuildInvoice(sampleInvoice(), sampleClient(), sampleCompany(), "en")
	b := BuildInvoice(sampleInvoice(), sampleClient(), sampleCompany(), "en")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs produced different layouts")
	}
}

func TestBuildGrowsWithItems(t *testing.T) {
	inv := sampleInvoice()
	for i := 0; i < 30; i++ {
		inv.Items = append(inv.Items, models.LineItem{Name: "Extra", Quantity: 1, PricePerUnit: 1})
	}
	l := BuildInvoice(inv, sampleClient(), sampleCompany(), "en")
	if l.Height <= PageMinHeight {
		t.Fatalf("height = %v, expected growth beyond %v", l.Height, PageMinHeight)
	}
}

func TestBuildNilInvoice(t *testing.T) {
	if l := BuildInvoice(nil, nil, nil, "en"); !l.Empty() {
		t.Fatalf("nil invoice must produce an empty layout")
	}
}
