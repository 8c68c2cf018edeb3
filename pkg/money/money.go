// Package money formatea montos en francos CFA con el agrupamiento francés.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency moneda usada en documentos y exportaciones.
const DefaultCurrency = "FCFA"

var printer = message.NewPrinter(language.French)

// Format devuelve "100 000" o "1 234,50": sin decimales si el monto es entero.
// Los espacios finos de CLDR se sustituyen por espacios normales (las fuentes del PDF no los tienen).
func Format(d decimal.Decimal) string {
	r := d.Round(2)
	var s string
	if r.IsInteger() {
		s = printer.Sprint(number.Decimal(r.IntPart()))
	} else {
		s = printer.Sprint(number.Decimal(r.InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}
	return normalizeSpaces(s)
}

// FormatCurrency añade el sufijo de moneda: "100 000 FCFA".
func FormatCurrency(d decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Format(d) + " " + currency
}

func normalizeSpaces(s string) string {
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}
