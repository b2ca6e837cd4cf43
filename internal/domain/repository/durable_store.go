package repository

import "context"

// Claves del almacenamiento local duradero.
const (
	KeySettings   = "stockrest_settings"
	KeyUsers      = "users"
	KeyItems      = "items"
	KeyCategories = "categories"
	KeyLogs       = "logs"
)

// DurableStore almacenamiento local que sobrevive reinicios: un valor JSON por clave.
type DurableStore interface {
	// Load decodifica la clave en dst. found es false si la clave no existe.
	Load(ctx context.Context, key string, dst any) (found bool, err error)
	Save(ctx context.Context, key string, v any) error
}
