package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/inventory"
)

// Source estado del que se leen los ítems a exportar (state.Container).
type Source interface {
	Items() []entity.InventoryItem
	Categories() []entity.Category
	Settings() entity.AppSettings
	Today() time.Time
}

// ShoppingListDocument datos ya calculados para el PDF de compras.
type ShoppingListDocument struct {
	GeneratedAt time.Time
	Rows        []inventory.ShoppingListRow
	Total       decimal.Decimal
	Settings    entity.AppSettings
}

// ShoppingListPDFGenerator dibuja la lista de compras (infrastructure/pdf).
type ShoppingListPDFGenerator interface {
	GenerateShoppingListPDF(ctx context.Context, doc ShoppingListDocument) ([]byte, error)
}
