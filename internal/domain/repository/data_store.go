package repository

import (
	"context"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// DataStore puerto del almacén remoto (fuente de verdad): lecturas completas
// ordenadas y escrituras de una fila por id.
type DataStore interface {
	// FetchUsers, FetchCategories y FetchItems devuelven la tabla completa ordenada por nombre.
	FetchUsers(ctx context.Context) ([]entity.User, error)
	FetchCategories(ctx context.Context) ([]entity.Category, error)
	FetchItems(ctx context.Context) ([]entity.InventoryItem, error)
	// FetchLogs devuelve las 50 entradas más recientes, de la más nueva a la más vieja.
	FetchLogs(ctx context.Context) ([]entity.Log, error)

	InsertUser(ctx context.Context, u *entity.User) error
	UpdateUser(ctx context.Context, u *entity.User) error

	InsertCategory(ctx context.Context, c *entity.Category) error
	DeleteCategory(ctx context.Context, id string) error

	InsertItem(ctx context.Context, it *entity.InventoryItem) error
	UpdateItem(ctx context.Context, it *entity.InventoryItem) error
	DeleteItem(ctx context.Context, id string) error
	// UpdateItemStock modifica solo los campos del conteo masivo.
	UpdateItemStock(ctx context.Context, id string, patch entity.StockPatch) error

	InsertLog(ctx context.Context, l *entity.Log) error

	// FindActiveUserByEmail devuelve la cuenta activa con ese email o nil si no existe.
	// La contraseña la verifica el llamador.
	FindActiveUserByEmail(ctx context.Context, email string) (*entity.User, error)
}
