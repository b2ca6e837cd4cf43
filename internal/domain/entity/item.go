package entity

import "github.com/shopspring/decimal"

// Unidad y días de vencimiento por defecto al dar de alta un ítem.
const (
	DefaultUnit       = "Kg"
	DefaultExpiryDays = 30
)

// DateLayout formato de fechas de calendario (YYYY-MM-DD) usado en ítems.
const DateLayout = "2006-01-02"

// InventoryItem representa un insumo contado en el inventario del restaurante.
// Las fechas se guardan como texto YYYY-MM-DD; ExpiryDate puede venir vacía o inválida.
type InventoryItem struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Unit          string              `json:"unit"`
	MinStock      decimal.Decimal     `json:"minStock"`
	CurrentStock  decimal.Decimal     `json:"currentStock"`
	LastCountDate string              `json:"lastCountDate"`
	ExpiryDate    string              `json:"expiryDate"`
	Responsible   string              `json:"responsible"`
	CategoryID    string              `json:"categoryId"`
	ValuePerUnit  decimal.NullDecimal `json:"valuePerUnit"`
}

// UnitValue devuelve el valor unitario o cero si no fue informado.
func (i InventoryItem) UnitValue() decimal.Decimal {
	if !i.ValuePerUnit.Valid {
		return decimal.Zero
	}
	return i.ValuePerUnit.Decimal
}

// TotalValue es derivado: CurrentStock × valor unitario. Nunca se persiste.
func (i InventoryItem) TotalValue() decimal.Decimal {
	return i.CurrentStock.Mul(i.UnitValue())
}

// StockPatch campos que modifica el conteo masivo de existencias.
type StockPatch struct {
	CurrentStock  decimal.Decimal
	ExpiryDate    string
	LastCountDate string
	Responsible   string
}

// Apply copia los campos del conteo sobre el ítem.
func (p StockPatch) Apply(item *InventoryItem) {
	item.CurrentStock = p.CurrentStock
	item.ExpiryDate = p.ExpiryDate
	item.LastCountDate = p.LastCountDate
	item.Responsible = p.Responsible
}
