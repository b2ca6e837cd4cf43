package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var defaultSettings = entity.DefaultSettings()

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func item(id string, current, min float64) entity.InventoryItem {
	return entity.InventoryItem{
		ID:           id,
		Name:         "item " + id,
		Unit:         "Kg",
		CurrentStock: decimal.NewFromFloat(current),
		MinStock:     decimal.NewFromFloat(min),
	}
}

func withValue(it entity.InventoryItem, v float64) entity.InventoryItem {
	it.ValuePerUnit = decimal.NewNullDecimal(decimal.NewFromFloat(v))
	return it
}

func withExpiry(it entity.InventoryItem, date string) entity.InventoryItem {
	it.ExpiryDate = date
	return it
}

func ids(items []entity.InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// DaysUntilExpiry
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysUntilExpiry_TresDias(t *testing.T) {
	assert.Equal(t, 3, inventory.DaysUntilExpiry("2024-03-10", day(2024, time.March, 7)))
}

func TestDaysUntilExpiry_IndependienteDeZonaHoraria(t *testing.T) {
	zones := []string{"America/Sao_Paulo", "Asia/Tokyo", "Pacific/Kiritimati", "Pacific/Pago_Pago", "UTC"}
	for _, name := range zones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			t.Skipf("zona %s no disponible: %v", name, err)
		}
		// 23:59 y 00:01 locales siguen siendo el mismo día de calendario.
		late := time.Date(2024, time.March, 7, 23, 59, 0, 0, loc)
		early := time.Date(2024, time.March, 7, 0, 1, 0, 0, loc)
		assert.Equal(t, 3, inventory.DaysUntilExpiry("2024-03-10", late), name)
		assert.Equal(t, 3, inventory.DaysUntilExpiry("2024-03-10", early), name)
	}
}

func TestDaysUntilExpiry_MismoDiaYAyer(t *testing.T) {
	today := day(2024, time.March, 7)
	assert.Equal(t, 0, inventory.DaysUntilExpiry("2024-03-07", today))
	assert.Equal(t, -1, inventory.DaysUntilExpiry("2024-03-06", today))
}

func TestDaysUntilExpiry_CruceDeHorarioDeVerano(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("zona America/New_York no disponible")
	}
	today := time.Date(2024, time.March, 9, 12, 0, 0, 0, loc)
	assert.Equal(t, 2, inventory.DaysUntilExpiry("2024-03-11", today))
}

func TestDaysUntilExpiry_FechaVaciaOInvalida(t *testing.T) {
	today := day(2024, time.March, 7)
	for _, in := range []string{"", "   ", "sin fecha", "2024-03", "2024/03/10", "2024-03-10T00:00:00Z", "abcd-03-10"} {
		assert.Equal(t, inventory.NoExpiry, inventory.DaysUntilExpiry(in, today), "entrada %q", in)
	}
}

func TestDaysUntilExpiry_ComponentesDesbordadosSeNormalizan(t *testing.T) {
	// 2024-02-30 equivale a 2024-03-01.
	assert.Equal(t, 1, inventory.DaysUntilExpiry("2024-02-30", day(2024, time.February, 29)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicados de alerta
// ──────────────────────────────────────────────────────────────────────────────

func TestIsOutOfStock_ExcluyeStockBajo(t *testing.T) {
	for _, min := range []float64{0, 1, 10, 1000} {
		it := item("1", 0, min)
		assert.True(t, inventory.IsOutOfStock(it))
		assert.False(t, inventory.IsLowStock(it, defaultSettings), "sin stock nunca es además bajo (min=%v)", min)
	}
}

func TestIsLowStock_UmbralConMargen(t *testing.T) {
	s := entity.AppSettings{ExpiryThresholdDays: 3, LowStockPercentage: 20}
	// umbral = 10 × 1.2 = 12
	assert.True(t, inventory.IsLowStock(item("1", 11.99, 10), s))
	assert.False(t, inventory.IsLowStock(item("1", 12, 10), s))
	assert.False(t, inventory.IsLowStock(item("1", 20, 10), s))

	s.LowStockPercentage = 0
	assert.True(t, inventory.IsLowStock(item("1", 9.5, 10), s))
	assert.False(t, inventory.IsLowStock(item("1", 10, 10), s))
}

func TestIsLowStock_EquivaleALaFormula(t *testing.T) {
	for _, p := range []int{0, 5, 20, 50, 100} {
		s := entity.AppSettings{LowStockPercentage: p}
		for _, cur := range []float64{0.5, 1, 7, 12, 12.5, 30} {
			it := item("1", cur, 10)
			want := cur < 10*(1+float64(p)/100)
			assert.Equal(t, want, inventory.IsLowStock(it, s), "p=%d cur=%v", p, cur)
		}
	}
}

func TestIsExpiring_VencidosYSinFecha(t *testing.T) {
	today := day(2024, time.March, 7)
	assert.True(t, inventory.IsExpiring(withExpiry(item("1", 1, 1), "2024-03-10"), defaultSettings, today))
	assert.False(t, inventory.IsExpiring(withExpiry(item("1", 1, 1), "2024-03-11"), defaultSettings, today))
	assert.True(t, inventory.IsExpiring(withExpiry(item("1", 1, 1), "2024-01-01"), defaultSettings, today), "vencido cuenta como próximo a vencer")
	for _, th := range []int{1, 3, 30, 998} {
		s := entity.AppSettings{ExpiryThresholdDays: th}
		assert.False(t, inventory.IsExpiring(item("1", 1, 1), s, today), "sin fecha nunca vence (umbral %d)", th)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregados
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalValue_ValorUnitarioFaltanteCuentaCero(t *testing.T) {
	items := []entity.InventoryItem{
		withValue(item("1", 2, 0), 10),
		item("2", 1, 0),
	}
	assert.True(t, decimal.NewFromInt(20).Equal(inventory.TotalValue(items)))
}

func TestTotalValue_Vacio(t *testing.T) {
	assert.True(t, inventory.TotalValue(nil).IsZero())
}

func TestFilterByMetric(t *testing.T) {
	today := day(2024, time.March, 7)
	items := []entity.InventoryItem{
		withExpiry(item("a", 0, 5), "2024-03-08"),
		item("b", 3, 5),
		withExpiry(item("c", 50, 5), "2024-03-09"),
		item("d", 50, 5),
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(inventory.FilterByMetric(items, inventory.MetricTotal, defaultSettings, today)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(inventory.FilterByMetric(items, inventory.MetricValue, defaultSettings, today)))
	assert.Equal(t, []string{"a"}, ids(inventory.FilterByMetric(items, inventory.MetricOutOfStock, defaultSettings, today)))
	assert.Equal(t, []string{"b"}, ids(inventory.FilterByMetric(items, inventory.MetricLowStock, defaultSettings, today)))
	assert.Equal(t, []string{"a", "c"}, ids(inventory.FilterByMetric(items, inventory.MetricExpiring, defaultSettings, today)))

	unknown := inventory.FilterByMetric(items, "desconocida", defaultSettings, today)
	require.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestSummarize_CuentaLasCincoTarjetas(t *testing.T) {
	today := day(2024, time.March, 7)
	items := []entity.InventoryItem{
		withValue(withExpiry(item("a", 0, 5), "2024-03-08"), 9),
		withValue(item("b", 3, 5), 2),
		withExpiry(item("c", 50, 5), "2024-03-09"),
	}
	s := inventory.Summarize(items, defaultSettings, today)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 1, s.OutOfStock)
	assert.Equal(t, 1, s.LowStock)
	assert.Equal(t, 2, s.Expiring)
	assert.True(t, decimal.NewFromInt(6).Equal(s.TotalValue))
	assert.Equal(t, 3, s.ExpiryDays)
	assert.Equal(t, 20, s.LowStockPct)
}
