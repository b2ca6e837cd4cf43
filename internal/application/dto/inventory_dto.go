package dto

import "github.com/shopspring/decimal"

// ItemRequest body para POST /api/items y PUT /api/items/:id.
// Unit, LastCountDate, ExpiryDate y Responsible vacíos toman el valor por defecto del alta.
type ItemRequest struct {
	Name          string              `json:"name" validate:"required,max=200"`
	Unit          string              `json:"unit" validate:"omitempty,max=20"`
	MinStock      decimal.Decimal     `json:"min_stock" validate:"gte=0"`
	CurrentStock  decimal.Decimal     `json:"current_stock" validate:"gte=0"`
	ValuePerUnit  decimal.NullDecimal `json:"value_per_unit" validate:"omitempty,gte=0"`
	LastCountDate string              `json:"last_count_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate    string              `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Responsible   string              `json:"responsible" validate:"omitempty,max=200"`
	CategoryID    string              `json:"category_id" validate:"required"`
}

// ItemResponse ítem con sus valores derivados para la vista.
type ItemResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Unit            string              `json:"unit"`
	MinStock        decimal.Decimal     `json:"min_stock"`
	CurrentStock    decimal.Decimal     `json:"current_stock"`
	ValuePerUnit    decimal.NullDecimal `json:"value_per_unit"`
	TotalValue      decimal.Decimal     `json:"total_value"`
	LastCountDate   string              `json:"last_count_date"`
	ExpiryDate      string              `json:"expiry_date"`
	DaysUntilExpiry int                 `json:"days_until_expiry"`
	Responsible     string              `json:"responsible"`
	CategoryID      string              `json:"category_id"`
	CategoryName    string              `json:"category_name,omitempty"`
	Status          string              `json:"status"`
	Badges          []string            `json:"badges"`
}

// ItemListQuery filtros de GET /api/items.
type ItemListQuery struct {
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	SortBy     string `query:"sort_by"`
	Desc       bool   `query:"desc"`
}

// CategoryRequest body para POST /api/categories.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse categoría con la cantidad de ítems que la referencian.
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

// StockUpdate una fila de la planilla de conteo.
type StockUpdate struct {
	ID           string          `json:"id" validate:"required"`
	CurrentStock decimal.Decimal `json:"current_stock" validate:"gte=0"`
	ExpiryDate   string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// StockBatchRequest body para POST /api/stock/batch.
// Responsible vacío = nombre del usuario autenticado.
type StockBatchRequest struct {
	Updates     []StockUpdate `json:"updates" validate:"required,min=1,dive"`
	Responsible string        `json:"responsible" validate:"omitempty,max=200"`
}

// StockBatchResponse resultado del guardado de la planilla.
type StockBatchResponse struct {
	Saved    int    `json:"saved"`
	BelowMin int    `json:"below_min"`
	Expiring int    `json:"expiring"`
	Message  string `json:"message"`
}

// StockSheetRow fila de la planilla de conteo (vista del personal).
type StockSheetRow struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name,omitempty"`
	MinStock      decimal.Decimal `json:"min_stock"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	ExpiryDate    string          `json:"expiry_date"`
	LastCountDate string          `json:"last_count_date"`
	Badges        []string        `json:"badges"`
}
