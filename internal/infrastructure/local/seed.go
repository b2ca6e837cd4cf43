package local

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// Credenciales del administrador de demostración.
const (
	SeedAdminEmail    = "admin@gmail.com"
	SeedAdminPassword = "admin"
)

// Dataset colecciones completas del modo local.
type Dataset struct {
	Users      []entity.User
	Categories []entity.Category
	Items      []entity.InventoryItem
	Logs       []entity.Log
}

// SeedDataset arma el dataset de demostración con fechas relativas a now. Las
// fechas de calendario se toman en la zona de now, igual que el alta de ítems.
func SeedDataset(now time.Time) (Dataset, error) {
	hash, err := entity.HashPassword(SeedAdminPassword)
	if err != nil {
		return Dataset{}, err
	}
	stamp := now.UTC()
	today := now.Format(entity.DateLayout)
	in := func(days int) string { return now.AddDate(0, 0, days).Format(entity.DateLayout) }
	dec := decimal.RequireFromString
	price := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

	return Dataset{
		Users: []entity.User{{
			ID:        "1",
			Name:      "Administrador",
			Email:     SeedAdminEmail,
			Role:      entity.RoleAdmin,
			Password:  hash,
			Status:    entity.StatusActive,
			CreatedAt: stamp,
		}},
		Categories: []entity.Category{
			{ID: "1", Name: "Grãos"},
			{ID: "2", Name: "Óleos e Temperos"},
			{ID: "3", Name: "Carnes"},
			{ID: "4", Name: "Laticínios"},
		},
		Items: []entity.InventoryItem{
			{ID: "101", Name: "Arroz Branco", Unit: "Kg", MinStock: dec("10"), CurrentStock: dec("12.5"),
				LastCountDate: today, ExpiryDate: in(60), Responsible: "Admin", CategoryID: "1", ValuePerUnit: price("6.50")},
			{ID: "102", Name: "Azeite de Oliva", Unit: "L", MinStock: dec("5"), CurrentStock: dec("2"),
				LastCountDate: today, ExpiryDate: in(180), Responsible: "Admin", CategoryID: "2", ValuePerUnit: price("38.90")},
			{ID: "103", Name: "Filé de Frango", Unit: "Kg", MinStock: dec("8"), CurrentStock: decimal.Zero,
				LastCountDate: today, ExpiryDate: in(10), Responsible: "Admin", CategoryID: "3", ValuePerUnit: price("19.90")},
			{ID: "104", Name: "Leite Integral", Unit: "L", MinStock: dec("12"), CurrentStock: dec("15"),
				LastCountDate: today, ExpiryDate: in(2), Responsible: "Admin", CategoryID: "4", ValuePerUnit: price("4.79")},
			{ID: "105", Name: "Sal Refinado", Unit: "Kg", MinStock: dec("2"), CurrentStock: dec("5"),
				LastCountDate: today, Responsible: "Admin", CategoryID: "2"},
		},
		Logs: []entity.Log{{
			ID:        "1",
			Action:    entity.ActionCreate,
			Details:   "Sistema inicializado com dados de demonstração",
			UserID:    entity.SystemUserID,
			UserName:  entity.SystemUserName,
			Timestamp: stamp,
		}},
	}, nil
}
