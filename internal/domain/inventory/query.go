package inventory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// Claves de ordenamiento aceptadas por SortItems.
const (
	SortByName          = "name"
	SortByUnit          = "unit"
	SortByValuePerUnit  = "valuePerUnit"
	SortByTotalValue    = "totalValue"
	SortByCurrentStock  = "currentStock"
	SortByMinStock      = "minStock"
	SortByExpiryDate    = "expiryDate"
	SortByLastCountDate = "lastCountDate"
)

// AllCategories valor de filtro que no restringe por categoría.
const AllCategories = "all"

// SearchItems filtra por nombre (sin distinguir mayúsculas) y categoría.
// categoryID vacío o "all" no filtra.
func SearchItems(items []entity.InventoryItem, term, categoryID string) []entity.InventoryItem {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(term))
	out := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if categoryID != "" && categoryID != AllCategories && it.CategoryID != categoryID {
			continue
		}
		if needle != "" && !strings.Contains(folder.String(it.Name), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// IsValidSortKey indica si key es una columna ordenable.
func IsValidSortKey(key string) bool {
	switch key {
	case SortByName, SortByUnit, SortByValuePerUnit, SortByTotalValue,
		SortByCurrentStock, SortByMinStock, SortByExpiryDate, SortByLastCountDate:
		return true
	}
	return false
}

// SortItems ordena una copia de items (orden estable). desc invierte el sentido;
// una clave desconocida devuelve la copia sin reordenar.
func SortItems(items []entity.InventoryItem, key string, desc bool) []entity.InventoryItem {
	out := make([]entity.InventoryItem, len(items))
	copy(out, items)
	cmp := comparator(key)
	if cmp == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return cmp(out[j], out[i]) < 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

func comparator(key string) func(a, b entity.InventoryItem) int {
	switch key {
	case SortByName:
		return func(a, b entity.InventoryItem) int { return strings.Compare(a.Name, b.Name) }
	case SortByUnit:
		return func(a, b entity.InventoryItem) int { return strings.Compare(a.Unit, b.Unit) }
	case SortByExpiryDate:
		return func(a, b entity.InventoryItem) int { return strings.Compare(a.ExpiryDate, b.ExpiryDate) }
	case SortByLastCountDate:
		return func(a, b entity.InventoryItem) int { return strings.Compare(a.LastCountDate, b.LastCountDate) }
	case SortByCurrentStock:
		return byDecimal(func(i entity.InventoryItem) decimal.Decimal { return i.CurrentStock })
	case SortByMinStock:
		return byDecimal(func(i entity.InventoryItem) decimal.Decimal { return i.MinStock })
	case SortByValuePerUnit:
		return byDecimal(entity.InventoryItem.UnitValue)
	case SortByTotalValue:
		return byDecimal(entity.InventoryItem.TotalValue)
	}
	return nil
}

func byDecimal(get func(entity.InventoryItem) decimal.Decimal) func(a, b entity.InventoryItem) int {
	return func(a, b entity.InventoryItem) int { return get(a).Cmp(get(b)) }
}
