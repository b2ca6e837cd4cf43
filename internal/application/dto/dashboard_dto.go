package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary: las cinco tarjetas del panel.
type DashboardSummaryDTO struct {
	TotalItems  int             `json:"total_items"`
	OutOfStock  int             `json:"out_of_stock"`
	LowStock    int             `json:"low_stock"`
	Expiring    int             `json:"expiring"`
	TotalValue  decimal.Decimal `json:"total_value"`
	ValueLabel  string          `json:"value_label"` // ej: "R$ 1.234,56"
	ExpiryDays  int             `json:"expiry_threshold_days"`
	LowStockPct int             `json:"low_stock_percentage"`
}

// SettingsRequest body para PUT /api/settings. Los límites se validan solo aquí.
type SettingsRequest struct {
	ExpiryThresholdDays int `json:"expiry_threshold_days" validate:"gte=0,lte=365"`
	LowStockPercentage  int `json:"low_stock_percentage" validate:"gte=0,lte=100"`
}

// SettingsResponse umbrales vigentes.
type SettingsResponse struct {
	ExpiryThresholdDays int `json:"expiry_threshold_days"`
	LowStockPercentage  int `json:"low_stock_percentage"`
}
