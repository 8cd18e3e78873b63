package random

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// en-US printer used for human-facing currency/number display (UI previews,
// CLI summaries). Record values themselves stay numeric.
var enUS = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as "$1,234.56".
func FormatCurrency(amount float64) string {
	return enUS.Sprintf("$%.2f", amount)
}

// FormatNumber renders a count with grouping separators, e.g. "1,234,567".
func FormatNumber(n int) string {
	return enUS.Sprintf("%d", n)
}
