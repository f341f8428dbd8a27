// Package render projects an invoice or receipt into a fixed, print-
// proportioned page layout and rasterizes that layout for PDF embedding.
// Building a layout is a pure transform: identical inputs always produce
// an identical layout.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ttrabelsi/facturier/internal/i18n"
	"github.com/ttrabelsi/facturier/internal/models"
	"github.com/ttrabelsi/facturier/internal/services"
)

// Page geometry in logical pixels: the A4-proportioned 595x842 base the
// on-screen preview used, with the same 48px padding.
const (
	PageWidth     = 595.0
	PageMinHeight = 842.0

	margin       = 48.0
	contentWidth = PageWidth - 2*margin
	totalsWidth  = 280.0
)

type Weight int

const (
	Regular Weight = iota
	Bold
)

type Align int

const (
	Left Align = iota
	Center
	Right
)

type RGB struct{ R, G, B uint8 }

var (
	colInk       = RGB{26, 26, 26}
	colGray      = RGB{102, 102, 102}
	colLightGray = RGB{136, 136, 136}
	colFaint     = RGB{153, 153, 153}
	colRule      = RGB{229, 229, 229}
	colGreenBg   = RGB{220, 252, 231}
	colGreenInk  = RGB{22, 101, 52}
	colRed       = RGB{220, 38, 38}
)

// Text is one run of text. X anchors the run according to Align; Y is the
// top of the line box.
type Text struct {
	X, Y   float64
	Size   float64
	Weight Weight
	Color  RGB
	Align  Align
	Strike bool
	Value  string
}

// Rule is a 1px horizontal line.
type Rule struct {
	X1, X2, Y float64
	Color     RGB
}

// Badge is a small filled chip with centered text, anchored like Text.
type Badge struct {
	X, Y       float64
	Align      Align
	Size       float64
	PadX, PadY float64
	Fill       RGB
	Color      RGB
	Value      string
}

// Layout is the full page: primitives at absolute coordinates plus the
// page extent. Height grows with content but never shrinks below the A4
// proportion.
type Layout struct {
	Width  float64
	Height float64
	Texts  []Text
	Rules  []Rule
	Badges []Badge
}

// Empty reports whether nothing was rendered; the export pipeline treats
// an empty layout as a missing render target.
func (l Layout) Empty() bool {
	return len(l.Texts) == 0 && len(l.Rules) == 0 && len(l.Badges) == 0
}

type docKind int

const (
	kindInvoice docKind = iota
	kindReceipt
)

// BuildInvoice lays out a full invoice page.
func BuildInvoice(inv *models.Invoice, client *models.Client, company *models.CompanyInfo, lang string) Layout {
	return build(kindInvoice, inv, client, company, lang)
}

// BuildReceipt lays out a payment receipt for the same invoice data.
func BuildReceipt(inv *models.Invoice, client *models.Client, company *models.CompanyInfo, lang string) Layout {
	return build(kindReceipt, inv, client, company, lang)
}

func build(kind docKind, inv *models.Invoice, client *models.Client, company *models.CompanyInfo, lang string) Layout {
	if inv == nil {
		return Layout{}
	}
	lang = i18n.Normalize(lang)
	tot := services.NewInvoiceService().Totals(inv)

	sh := &sheet{l: Layout{Width: PageWidth}}
	right := PageWidth - margin

	sender := "Your Company"
	if company != nil && company.Name != "" {
		sender = company.Name
	}
	number := inv.InvoiceNumber
	title := i18n.T(lang, "invoice")
	dateLabel := i18n.T(lang, "issued")
	dateValue := formatDate(lang, inv.CreatedAt)
	if kind == kindReceipt {
		number = inv.ReceiptNumber()
		title = i18n.T(lang, "receipt")
		dateLabel = i18n.T(lang, "paid_date")
		dateValue = formatDate(lang, inv.UpdatedAt)
	}

	// Header: sender name on the left, document identity on the right.
	y := margin
	sh.text(Text{X: margin, Y: y, Size: 24, Weight: Bold, Color: colInk, Value: sender})
	sh.text(Text{X: right, Y: y, Size: 28, Weight: Bold, Color: colInk, Align: Right, Value: title})
	sh.text(Text{X: right, Y: y + 36, Size: 14, Color: colGray, Align: Right, Value: number})
	sh.text(Text{X: right, Y: y + 54, Size: 14, Color: colGray, Align: Right, Value: dateLabel + " " + dateValue})
	y += 72
	if kind == kindReceipt {
		sh.badge(Badge{X: right, Y: y + 4, Align: Right, Size: 12, PadX: 12, PadY: 4,
			Fill: colGreenBg, Color: colGreenInk, Value: i18n.T(lang, "paid_in_full")})
		y += 28
	}
	y += 24

	// FROM / BILL TO (or RECEIVED FROM) columns.
	partyRightX := margin + totalsWidth
	sh.text(Text{X: margin, Y: y, Size: 11, Color: colLightGray, Value: i18n.T(lang, "from")})
	toKey := "bill_to"
	if kind == kindReceipt {
		toKey = "received_from"
	}
	sh.text(Text{X: partyRightX, Y: y, Size: 11, Color: colLightGray, Value: i18n.T(lang, toKey)})
	colTop := y + 20

	leftBottom := sh.party(margin, colTop, sender, contactLines(companyContact(company)))
	var rightBottom float64
	if client != nil {
		rightBottom = sh.party(partyRightX, colTop, client.Name, contactLines(contact{client.Phone, client.Email, client.Address}))
	} else {
		// Dangling or absent client reference: explicit placeholder,
		// never a stale name and never an omitted block.
		sh.text(Text{X: partyRightX, Y: colTop + 2, Size: 14, Color: colFaint, Value: i18n.T(lang, "no_client_selected")})
		rightBottom = colTop + 24
	}
	y = maxF(leftBottom, rightBottom) + 40

	y = sh.itemsTable(y, lang, inv)
	y = sh.totalsBlock(y, kind, lang, inv, tot)
	y = sh.signature(y, lang)
	if inv.Note != "" {
		y = sh.noteBlock(y, lang, inv.Note)
	}

	y += 24
	sh.text(Text{X: PageWidth / 2, Y: y, Size: 14, Color: colGray, Align: Center, Value: i18n.T(lang, "thank_you")})
	y += 24

	sh.l.Height = maxF(PageMinHeight, y+72)
	sh.text(Text{X: right, Y: sh.l.Height - 36, Size: 12, Color: colFaint, Align: Right,
		Value: number + "   " + i18n.PageLabel(lang, 1, 1)})
	return sh.l
}

// sheet accumulates primitives while a document is being laid out.
type sheet struct {
	l Layout
}

func (s *sheet) text(t Text)   { s.l.Texts = append(s.l.Texts, t) }
func (s *sheet) badge(b Badge) { s.l.Badges = append(s.l.Badges, b) }
func (s *sheet) rule(x1, x2, y float64) {
	s.l.Rules = append(s.l.Rules, Rule{X1: x1, X2: x2, Y: y, Color: colRule})
}

type contact struct{ phone, email, address string }

func companyContact(c *models.CompanyInfo) contact {
	if c == nil {
		return contact{}
	}
	return contact{c.Phone, c.Email, c.Address}
}

func contactLines(c contact) []string {
	var lines []string
	for _, v := range []string{c.phone, c.email, c.address} {
		if v != "" {
			lines = append(lines, v)
		}
	}
	return lines
}

// party lays out one from/bill-to column and returns its bottom edge.
func (s *sheet) party(x, y float64, name string, details []string) float64 {
	s.text(Text{X: x, Y: y, Size: 16, Weight: Bold, Color: colInk, Value: name})
	y += 24
	for _, d := range details {
		s.text(Text{X: x, Y: y, Size: 14, Color: colGray, Value: d})
		y += 18
	}
	return y
}

// Table columns: description 45%, qty 10%, unit price 20%, amount 25%.
var (
	descX      = margin + 8
	qtyCenterX = margin + contentWidth*0.50
	unitRightX = margin + contentWidth*0.75 - 8
	amtRightX  = PageWidth - margin - 8
)

func (s *sheet) itemsTable(y float64, lang string, inv *models.Invoice) float64 {
	s.rule(margin, PageWidth-margin, y)
	s.text(Text{X: descX, Y: y + 10, Size: 12, Color: colGray, Value: i18n.T(lang, "description")})
	s.text(Text{X: qtyCenterX, Y: y + 10, Size: 12, Color: colGray, Align: Center, Value: i18n.T(lang, "qty")})
	s.text(Text{X: unitRightX, Y: y + 10, Size: 12, Color: colGray, Align: Right, Value: i18n.T(lang, "unit_price")})
	s.text(Text{X: amtRightX, Y: y + 10, Size: 12, Color: colGray, Align: Right, Value: i18n.T(lang, "amount")})
	y += 36
	s.rule(margin, PageWidth-margin, y)

	if len(inv.Items) == 0 {
		s.text(Text{X: PageWidth / 2, Y: y + 20, Size: 14, Color: colFaint, Align: Center, Value: i18n.T(lang, "no_items")})
		y += 56
		s.rule(margin, PageWidth-margin, y)
		return y + 16
	}

	for _, it := range inv.Items {
		name := it.Name
		if name == "" {
			name = "Untitled"
		}
		original := float64(it.Quantity) * it.PricePerUnit
		rowH := 48.0
		s.text(Text{X: descX, Y: y + 16, Size: 14, Color: colInk, Value: name})
		s.text(Text{X: qtyCenterX, Y: y + 16, Size: 14, Color: colInk, Align: Center, Value: strconv.Itoa(it.Quantity)})
		s.text(Text{X: unitRightX, Y: y + 16, Size: 14, Color: colInk, Align: Right, Value: money(inv.Currency, it.PricePerUnit)})

		if it.Discount > 0 {
			rowH = 64
			discounted := original * (1 - it.Discount/100)
			s.text(Text{X: amtRightX, Y: y + 8, Size: 12, Color: colFaint, Align: Right, Strike: true,
				Value: money(inv.Currency, original)})
			amount := money(inv.Currency, discounted)
			s.text(Text{X: amtRightX, Y: y + 28, Size: 14, Weight: Bold, Color: colInk, Align: Right, Value: amount})
			chip := "-" + strconv.FormatFloat(it.Discount, 'f', -1, 64) + "%"
			s.badge(Badge{X: amtRightX - approxWidth(amount, 14) - 6, Y: y + 30, Align: Right,
				Size: 10, PadX: 6, PadY: 2, Fill: colGreenBg, Color: colGreenInk, Value: chip})
		} else {
			s.text(Text{X: amtRightX, Y: y + 16, Size: 14, Color: colInk, Align: Right, Value: money(inv.Currency, original)})
		}
		y += rowH
		s.rule(margin, PageWidth-margin, y)
	}
	return y + 16
}

func (s *sheet) totalsBlock(y float64, kind docKind, lang string, inv *models.Invoice, tot services.Totals) float64 {
	labelX := PageWidth - margin - totalsWidth
	valueX := PageWidth - margin
	hasBreakdown := tot.Discount > 0 || inv.TaxRate > 0

	if hasBreakdown {
		s.text(Text{X: labelX, Y: y, Size: 14, Color: colGray, Value: i18n.T(lang, "subtotal")})
		s.text(Text{X: valueX, Y: y, Size: 14, Color: colInk, Align: Right, Value: money(inv.Currency, tot.Subtotal)})
		y += 26
	}
	if tot.Discount > 0 {
		s.text(Text{X: labelX, Y: y, Size: 14, Color: colGray, Value: i18n.T(lang, "discount")})
		s.text(Text{X: valueX, Y: y, Size: 14, Color: colRed, Align: Right, Value: "-" + money(inv.Currency, tot.Discount)})
		y += 26
	}
	if inv.TaxRate > 0 {
		label := fmt.Sprintf("%s (%s%%)", i18n.T(lang, "tax"), strconv.FormatFloat(inv.TaxRate, 'f', -1, 64))
		s.text(Text{X: labelX, Y: y, Size: 14, Color: colGray, Value: label})
		s.text(Text{X: valueX, Y: y, Size: 14, Color: colInk, Align: Right, Value: money(inv.Currency, tot.Tax)})
		y += 26
	}
	if hasBreakdown {
		s.rule(labelX, valueX, y)
		y += 10
	}
	totalKey := "total"
	if kind == kindReceipt {
		totalKey = "amount_paid"
	}
	s.text(Text{X: labelX, Y: y, Size: 14, Weight: Bold, Color: colInk, Value: i18n.T(lang, totalKey)})
	s.text(Text{X: valueX, Y: y, Size: 16, Weight: Bold, Color: colInk, Align: Right, Value: money(inv.Currency, tot.Total)})
	return y + 40
}

func (s *sheet) signature(y float64, lang string) float64 {
	y += 36
	s.l.Rules = append(s.l.Rules, Rule{X1: margin, X2: margin + 180, Y: y, Color: RGB{26, 26, 26}})
	s.text(Text{X: margin + 90, Y: y + 8, Size: 12, Color: colGray, Align: Center, Value: i18n.T(lang, "authorized_signature")})
	return y + 36
}

func (s *sheet) noteBlock(y float64, lang, note string) float64 {
	y += 16
	s.rule(margin, PageWidth-margin, y)
	y += 20
	s.text(Text{X: margin, Y: y, Size: 11, Color: colLightGray, Value: i18n.T(lang, "notes")})
	y += 18
	for _, line := range splitLines(note) {
		s.text(Text{X: margin, Y: y, Size: 14, Color: colGray, Value: line})
		y += 18
	}
	return y
}

// money formats an amount the way every document shows it: currency code,
// space, exactly two decimals. Rounding happens here and only here.
func money(currency string, v float64) string {
	return fmt.Sprintf("%s %.2f", currency, v)
}

func formatDate(lang string, ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	if lang == "fr" {
		return ts.Format("02/01/2006")
	}
	return ts.Format("01/02/2006")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

// approxWidth estimates rendered text width for chip placement next to a
// right-aligned amount. An estimate keeps the layout independent of font
// metrics; a few pixels of drift on the chip is invisible at print size.
func approxWidth(s string, size float64) float64 {
	return float64(len(s)) * size * 0.56
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
