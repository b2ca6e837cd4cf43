package dto

import "time"

// LogQuery filtros de GET /api/logs.
type LogQuery struct {
	PageRequest
	Search string `query:"search"`
	Action string `query:"action" validate:"omitempty,oneof=create update delete stock_update"`
}

// LogResponse entrada de auditoría.
type LogResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Timestamp time.Time `json:"timestamp"`
}

// LogPage página de auditoría.
type LogPage struct {
	Items []LogResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
