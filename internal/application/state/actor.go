package state

import (
	"context"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// Actor autor de una acción, usado para firmar la auditoría.
type Actor struct {
	ID   string
	Name string
}

type actorKey struct{}

// WithActor adjunta el autor al contexto (lo hace el middleware HTTP con los claims del token).
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom devuelve el autor del contexto, si existe.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok && a.ID != ""
}

// actorFor resuelve el autor: contexto, luego usuario en sesión, luego "system".
func actorFor(ctx context.Context, current *entity.User) Actor {
	if a, ok := ActorFrom(ctx); ok {
		return a
	}
	if current != nil {
		return Actor{ID: current.ID, Name: current.Name}
	}
	return Actor{ID: entity.SystemUserID, Name: entity.SystemUserName}
}
