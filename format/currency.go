// Package format renders amounts and schedules as text. Nothing in the
// calculation packages formats numbers; it all happens here.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders an amount as dollars with thousands separators, e.g. $1,234.56.
func Currency(amount float64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}

// Years renders a month count as fractional years.
func Years(months int) string {
	return printer.Sprintf("%.1f years", float64(months)/12)
}
