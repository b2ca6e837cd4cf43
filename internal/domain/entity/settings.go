package entity

// Valores por defecto de AppSettings.
const (
	DefaultExpiryThresholdDays = 3
	DefaultLowStockPercentage  = 20
)

// AppSettings umbrales de alerta. Se guardan solo en almacenamiento local.
type AppSettings struct {
	ExpiryThresholdDays int `json:"expiryThresholdDays"`
	LowStockPercentage  int `json:"lowStockPercentage"`
}

// DefaultSettings devuelve los umbrales iniciales (3 días, 20%).
func DefaultSettings() AppSettings {
	return AppSettings{
		ExpiryThresholdDays: DefaultExpiryThresholdDays,
		LowStockPercentage:  DefaultLowStockPercentage,
	}
}
