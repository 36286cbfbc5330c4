package portfolio

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount trunca a unidades y agrupa miles al estilo danés (42000 → "42.000").
func FormatAmount(d decimal.Decimal) string {
	p := message.NewPrinter(language.Danish)
	return p.Sprintf("%d", d.IntPart())
}

// RevenueSubtitle línea resumen de la tarjeta de cliente.
func RevenueSubtitle(forecast, actual decimal.Decimal) string {
	return "Forecast: " + FormatAmount(forecast) + " | Actual: " + FormatAmount(actual)
}
