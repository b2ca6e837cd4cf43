package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrCategoryInUse   = errors.New("categoría con ítems asociados")
	ErrNothingToExport = errors.New("no hay ítems en falta para exportar")
)

// CategoryInUseError rechaza el borrado de una categoría referenciada por ítems.
// Error() devuelve el mensaje que se muestra al usuario.
type CategoryInUseError struct {
	CategoryID string
	Count      int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("Não é possível excluir. A categoria possui %d itens.", e.Count)
}

// Unwrap permite errors.Is(err, ErrCategoryInUse).
func (e *CategoryInUseError) Unwrap() error { return ErrCategoryInUse }
