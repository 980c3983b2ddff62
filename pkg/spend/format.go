package spend

import (
	"math"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts for labels and tables in a given locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter returns a Formatter for the BCP 47 locale tag (for example
// "en-US" or "de-DE") that prefixes amounts with symbol. Unknown tags fall
// back to English.
func NewFormatter(locale, symbol string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Amount formats v with grouping separators and no decimals,
// e.g. "$1,234,567".
func (f Formatter) Amount(v float64) string {
	return f.printer.Sprintf("%s%.0f", f.symbol, v)
}

// Compact formats v with a magnitude suffix, e.g. "$1.2M".
func (f Formatter) Compact(v float64) string {
	abs := math.Abs(v)
	unit, ok := lo.Find(compactUnits, func(u compactUnit) bool { return abs >= u.size })
	if !ok {
		return f.printer.Sprintf("%s%.0f", f.symbol, v)
	}
	return f.printer.Sprintf("%s%.1f%s", f.symbol, v/unit.size, unit.suffix)
}

// Percent formats a fraction as a percentage, e.g. 0.125 → "12.5%".
func (f Formatter) Percent(share float64) string {
	return f.printer.Sprintf("%.1f%%", share*100)
}

type compactUnit struct {
	size   float64
	suffix string
}

var compactUnits = []compactUnit{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}
