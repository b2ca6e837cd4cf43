package repository

import (
	"context"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// SessionKey ranura donde se guarda el usuario autenticado.
const SessionKey = "stockrest_user"

// SessionStore guarda el usuario autenticado mientras dure la sesión.
type SessionStore interface {
	// Get devuelve nil si no hay sesión.
	Get(ctx context.Context) (*entity.User, error)
	Set(ctx context.Context, u entity.User) error
	Clear(ctx context.Context) error
}
