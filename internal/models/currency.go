package models

// Currencies lists the codes the invoice form offers. TND first: it is the
// default for new invoices.
var Currencies = []string{
	"TND", "EUR", "USD", "GBP", "CAD", "CHF", "MAD", "AED", "SAR",
}

// ValidCurrency reports whether code is one of the supported currencies.
func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// CurrencySymbol returns the display symbol for a currency code, falling
// back to the code itself. Documents print the code, not the symbol; the
// symbol is used for compact screen display.
func CurrencySymbol(code string) string {
	switch code {
	case "TND":
		return "DT"
	case "EUR":
		return "€"
	case "USD", "CAD":
		return "$"
	case "GBP":
		return "£"
	case "CHF":
		return "CHF"
	case "MAD":
		return "DH"
	default:
		return code
	}
}
