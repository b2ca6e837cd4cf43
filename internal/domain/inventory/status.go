package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// Estados de stock que se exportan en la lista de compras.
const (
	StatusOK         = "OK"
	StatusLow        = "BAIXO"
	StatusOutOfStock = "SEM ESTOQUE"
)

// StockStatus clasifica un ítem: SEM ESTOQUE tiene prioridad sobre BAIXO.
func StockStatus(item entity.InventoryItem, settings entity.AppSettings) string {
	switch {
	case IsOutOfStock(item):
		return StatusOutOfStock
	case IsLowStock(item, settings):
		return StatusLow
	default:
		return StatusOK
	}
}

// Badges devuelve las etiquetas que el panel muestra junto a cada ítem.
// "Vence em Nd" solo aparece si todavía hay existencia.
func Badges(item entity.InventoryItem, settings entity.AppSettings, today time.Time) []string {
	out := IsOutOfStock(item)
	low := IsLowStock(item, settings)
	days := DaysUntilExpiry(item.ExpiryDate, today)
	expiring := days <= settings.ExpiryThresholdDays

	var badges []string
	if out {
		badges = append(badges, "Sem Estoque")
	}
	if low {
		badges = append(badges, "Baixo")
	}
	if expiring && !out {
		badges = append(badges, fmt.Sprintf("Vence em %dd", days))
	}
	if !out && !low && !expiring {
		badges = append(badges, "OK")
	}
	return badges
}

// FillSummary resume el guardado de la planilla de conteo.
type FillSummary struct {
	Saved    int
	BelowMin int
	Expiring int
}

// Message texto de confirmación que ve el operador.
func (f FillSummary) Message() string {
	return fmt.Sprintf("Salvo! %d itens atualizados. %d abaixo do mínimo/margem. %d vencendo.", f.Saved, f.BelowMin, f.Expiring)
}

// SummarizeFill cuenta, sobre los ítems recién guardados, cuántos quedaron bajo
// mínimo más margen (incluye stock cero) y cuántos vencen dentro del umbral.
func SummarizeFill(saved []entity.InventoryItem, settings entity.AppSettings, today time.Time) FillSummary {
	s := FillSummary{Saved: len(saved)}
	for _, it := range saved {
		if IsOutOfStock(it) || IsLowStock(it, settings) {
			s.BelowMin++
		}
		if IsExpiring(it, settings, today) {
			s.Expiring++
		}
	}
	return s
}
