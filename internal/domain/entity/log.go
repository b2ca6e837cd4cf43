package entity

import "time"

// Acciones registradas en la auditoría.
const (
	ActionCreate      = "create"
	ActionUpdate      = "update"
	ActionDelete      = "delete"
	ActionStockUpdate = "stock_update"
)

// Autor usado cuando no hay sesión activa.
const (
	SystemUserID   = "system"
	SystemUserName = "System"
)

// Log entrada inmutable de la auditoría (más reciente primero).
type Log struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Timestamp time.Time `json:"timestamp"`
}

// IsValidAction indica si la acción pertenece al catálogo conocido.
func IsValidAction(a string) bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionStockUpdate:
		return true
	}
	return false
}
