package inventory

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// ShoppingListFilename nombre sugerido para la descarga CSV.
const ShoppingListFilename = "lista_compras_stockrest.csv"

// NothingToExportMessage aviso cuando ningún ítem necesita reposición.
const NothingToExportMessage = "Nenhum item em falta para exportar."

// ShoppingListHeader columnas del CSV de compras.
var ShoppingListHeader = []string{
	"Produto", "Categoria", "Estoque Atual", "Estoque Minimo", "Unidade", "Status", "Valor Unit.", "Valor Total",
}

// ShoppingListRow un ítem que necesita reposición.
type ShoppingListRow struct {
	Product      string
	Category     string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	Unit         string
	Status       string
	UnitValue    decimal.Decimal
	TotalValue   decimal.Decimal
}

// Record devuelve la fila en el orden de ShoppingListHeader.
func (r ShoppingListRow) Record() []string {
	return []string{
		r.Product,
		r.Category,
		r.CurrentStock.String(),
		r.MinStock.String(),
		r.Unit,
		r.Status,
		r.UnitValue.String(),
		r.TotalValue.StringFixed(2),
	}
}

// ShoppingList arma la lista de compras: solo ítems BAIXO o SEM ESTOQUE, en el
// orden recibido. Una categoría inexistente se exporta vacía.
func ShoppingList(items []entity.InventoryItem, categories []entity.Category, settings entity.AppSettings) []ShoppingListRow {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	rows := make([]ShoppingListRow, 0)
	for _, it := range items {
		status := StockStatus(it, settings)
		if status == StatusOK {
			continue
		}
		rows = append(rows, ShoppingListRow{
			Product:      it.Name,
			Category:     names[it.CategoryID],
			CurrentStock: it.CurrentStock,
			MinStock:     it.MinStock,
			Unit:         it.Unit,
			Status:       status,
			UnitValue:    it.UnitValue(),
			TotalValue:   it.TotalValue(),
		})
	}
	return rows
}

// WriteShoppingListCSV escribe cabecera y filas. Sin filas devuelve domain.ErrNothingToExport
// y no escribe nada.
func WriteShoppingListCSV(w io.Writer, rows []ShoppingListRow) error {
	if len(rows) == 0 {
		return domain.ErrNothingToExport
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ShoppingListHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
