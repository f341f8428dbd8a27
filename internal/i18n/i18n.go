// Package i18n holds the static label tables used on exported documents.
// Two languages are supported; lookups never render blank: unknown
// languages fall back to the default language, unknown keys echo the key.
package i18n

import (
	"fmt"
	"strings"
)

// Default is the language used when a requested code is not supported.
const Default = "en"

var translations = map[string]map[string]string{
	"en": {
		"invoice":              "INVOICE",
		"issued":               "Issued",
		"from":                 "FROM",
		"bill_to":              "BILL TO",
		"description":          "Description",
		"qty":                  "Qty",
		"unit_price":           "Unit Price",
		"amount":               "Amount",
		"no_items":             "No items added",
		"subtotal":             "Subtotal",
		"discount":             "Discount",
		"tax":                  "Tax",
		"total":                "Total",
		"notes":                "Notes",
		"authorized_signature": "Authorized Signature",
		"no_client_selected":   "No client selected",
		"receipt":              "RECEIPT",
		"payment_receipt":      "Payment Receipt",
		"received_from":        "RECEIVED FROM",
		"paid_date":            "Paid",
		"payment_for":          "Payment For",
		"amount_paid":          "Amount Paid",
		"thank_you":            "Thank you for your payment!",
		"paid_in_full":         "PAID IN FULL",
		"receipt_number":       "Receipt #",
	},
	"fr": {
		"invoice":              "FACTURE",
		"issued":               "Émise le",
		"from":                 "DE",
		"bill_to":              "FACTURER À",
		"description":          "Description",
		"qty":                  "Qté",
		"unit_price":           "Prix Unitaire",
		"amount":               "Montant",
		"no_items":             "Aucun article ajouté",
		"subtotal":             "Sous-total",
		"discount":             "Remise",
		"tax":                  "Taxe",
		"total":                "Total",
		"notes":                "Notes",
		"authorized_signature": "Signature Autorisée",
		"no_client_selected":   "Aucun client sélectionné",
		"receipt":              "REÇU",
		"payment_receipt":      "Reçu de Paiement",
		"received_from":        "REÇU DE",
		"paid_date":            "Payé le",
		"payment_for":          "Paiement Pour",
		"amount_paid":          "Montant Payé",
		"thank_you":            "Merci pour votre paiement!",
		"paid_in_full":         "PAYÉ EN TOTALITÉ",
		"receipt_number":       "Reçu #",
	},
}

// Supported returns the language codes with a full label set.
func Supported() []string { return []string{"en", "fr"} }

// Normalize reduces an Accept-Language style value ("fr-FR,fr;q=0.8",
// "EN-gb") to a supported code, falling back to the default language.
func Normalize(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(c, "-_,;"); i >= 0 {
		c = c[:i]
	}
	if _, ok := translations[c]; ok {
		return c
	}
	return Default
}

// T returns the label for key in lang. Unknown languages fall back to the
// default language, unknown keys to the key itself.
func T(lang, key string) string {
	if m, ok := translations[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations[Default][key]; ok {
		return v
	}
	return key
}

// PageLabel formats the "page X of Y" footer for the given language.
func PageLabel(lang string, current, total int) string {
	if Normalize(lang) == "fr" {
		return fmt.Sprintf("%d sur %d", current, total)
	}
	return fmt.Sprintf("%d of %d", current, total)
}
