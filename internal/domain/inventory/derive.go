// Package inventory contiene las reglas puras que convierten ítems en alertas:
// stock bajo, sin stock, vencimiento próximo y valor total.
// Ninguna función hace I/O; la fecha de hoy siempre se recibe como parámetro.
package inventory

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// NoExpiry se devuelve cuando la fecha de vencimiento falta o no se puede leer.
const NoExpiry = 999

// Métricas del panel.
const (
	MetricTotal      = "total"
	MetricOutOfStock = "outOfStock"
	MetricLowStock   = "lowStock"
	MetricExpiring   = "expiring"
	MetricValue      = "value"
)

var hundred = decimal.NewFromInt(100)

// DaysUntilExpiry devuelve los días de calendario entre today y date (YYYY-MM-DD).
// La fecha se arma con sus componentes año/mes/día, sin zona horaria, así el
// resultado no cambia con el offset del proceso: mismo día = 0, ayer = -1.
func DaysUntilExpiry(date string, today time.Time) int {
	y, m, d, ok := parseCivilDate(date)
	if !ok {
		return NoExpiry
	}
	expiry := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	ty, tm, td := today.Date()
	base := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(expiry.Sub(base).Hours() / 24))
}

// parseCivilDate separa "Y-M-D" en enteros. Acepta componentes desbordados
// (2024-02-30) que time.Date normaliza como un calendario.
func parseCivilDate(s string) (y, m, d int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, false
	}
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return 0, 0, 0, false
	}
	var vals [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = n
	}
	if vals[0] <= 0 {
		return 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], true
}

// IsOutOfStock: existencia exactamente en cero.
func IsOutOfStock(item entity.InventoryItem) bool {
	return item.CurrentStock.IsZero()
}

// IsLowStock: stock por debajo de MinStock × (1 + p/100). Un ítem sin stock
// nunca se clasifica además como bajo.
func IsLowStock(item entity.InventoryItem, settings entity.AppSettings) bool {
	if IsOutOfStock(item) {
		return false
	}
	return item.CurrentStock.LessThan(LowStockThreshold(item, settings))
}

// LowStockThreshold devuelve MinStock × (1 + LowStockPercentage/100).
func LowStockThreshold(item entity.InventoryItem, settings entity.AppSettings) decimal.Decimal {
	factor := decimal.NewFromInt(int64(settings.LowStockPercentage)).Div(hundred).Add(decimal.NewFromInt(1))
	return item.MinStock.Mul(factor)
}

// IsExpiring: días restantes <= ExpiryThresholdDays. Incluye vencidos;
// nunca aplica a ítems sin fecha (NoExpiry).
func IsExpiring(item entity.InventoryItem, settings entity.AppSettings, today time.Time) bool {
	return DaysUntilExpiry(item.ExpiryDate, today) <= settings.ExpiryThresholdDays
}

// TotalValue suma CurrentStock × valor unitario (0 si falta).
func TotalValue(items []entity.InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalValue())
	}
	return total
}

// FilterByMetric materializa como lista la misma cuenta que muestran las tarjetas.
// total y value devuelven todo; una métrica desconocida devuelve vacío. Conserva el orden.
func FilterByMetric(items []entity.InventoryItem, metric string, settings entity.AppSettings, today time.Time) []entity.InventoryItem {
	var keep func(entity.InventoryItem) bool
	switch metric {
	case MetricTotal, MetricValue:
		keep = func(entity.InventoryItem) bool { return true }
	case MetricOutOfStock:
		keep = IsOutOfStock
	case MetricLowStock:
		keep = func(it entity.InventoryItem) bool { return IsLowStock(it, settings) }
	case MetricExpiring:
		keep = func(it entity.InventoryItem) bool { return IsExpiring(it, settings, today) }
	default:
		return []entity.InventoryItem{}
	}
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// IsValidMetric indica si metric es una de las cinco tarjetas del panel.
func IsValidMetric(metric string) bool {
	switch metric {
	case MetricTotal, MetricOutOfStock, MetricLowStock, MetricExpiring, MetricValue:
		return true
	}
	return false
}

// Summary agrega los números de las tarjetas del panel.
type Summary struct {
	TotalItems  int
	OutOfStock  int
	LowStock    int
	Expiring    int
	TotalValue  decimal.Decimal
	ExpiryDays  int
	LowStockPct int
}

// Summarize calcula las cinco tarjetas en una pasada.
func Summarize(items []entity.InventoryItem, settings entity.AppSettings, today time.Time) Summary {
	s := Summary{
		TotalItems:  len(items),
		TotalValue:  decimal.Zero,
		ExpiryDays:  settings.ExpiryThresholdDays,
		LowStockPct: settings.LowStockPercentage,
	}
	for _, it := range items {
		if IsOutOfStock(it) {
			s.OutOfStock++
		}
		if IsLowStock(it, settings) {
			s.LowStock++
		}
		if IsExpiring(it, settings, today) {
			s.Expiring++
		}
		s.TotalValue = s.TotalValue.Add(it.TotalValue())
	}
	return s
}
