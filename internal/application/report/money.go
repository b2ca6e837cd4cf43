package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatBRL formatea un importe como moneda brasileña: "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprintf("R$ %.2f", d.Round(2).InexactFloat64())
}
