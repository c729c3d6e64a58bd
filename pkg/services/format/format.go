package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered wherever an aggregate is undefined for the current
// selection.
const Placeholder = "n/a"

var printer = message.NewPrinter(language.English)

// Currency renders amount as "<symbol> 1,234.56".
func Currency(symbol string, amount decimal.Decimal) string {
	return printer.Sprintf("%s %.2f", symbol, amount.Round(2).InexactFloat64())
}

// Number renders an integer with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

func Float(v float64, precision int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), v)
}

// Percent renders v, already scaled to 0..100, with one decimal.
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}
