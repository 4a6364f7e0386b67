package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol is followed by a no-break space, the way id-ID renders IDR.
const CurrencySymbol = "Rp\u00a0"

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats a whole-rupiah amount with Indonesian grouping and no decimals, e.g. "Rp 10.000.000".
func Rupiah(amount int64) string {
	if amount < 0 {
		return "-" + CurrencySymbol + printer.Sprintf("%d", magnitude(amount))
	}
	return CurrencySymbol + Grouped(amount)
}

// RupiahDecimal rounds half away from zero to whole rupiah before formatting.
func RupiahDecimal(amount decimal.Decimal) string {
	return Rupiah(amount.Round(0).IntPart())
}

// Grouped renders an integer with "." thousands separators.
func Grouped(n int64) string {
	return printer.Sprintf("%d", n)
}

// Quantity renders a volume with a decimal comma and without trailing zeros: 1.5 -> "1,5", 5 -> "5".
func Quantity(v decimal.Decimal) string {
	if v.IsInteger() {
		return Grouped(v.IntPart())
	}
	f, _ := v.Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(4)))
}
