// Package catalog arma las vistas del panel sobre el contenedor de estado y
// aplica los controles previos a las acciones (referencias de categoría,
// rangos de ajustes).
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/jhoicas/stockrest/internal/application/auth"
	"github.com/jhoicas/stockrest/internal/application/dto"
	"github.com/jhoicas/stockrest/internal/application/report"
	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/inventory"
)

// Store lo que el servicio usa del contenedor de estado.
type Store interface {
	Items() []entity.InventoryItem
	Categories() []entity.Category
	Users() []entity.User
	Logs() []entity.Log
	Settings() entity.AppSettings
	Today() time.Time
	DeleteCategory(ctx context.Context, id string) error
	UpdateStockBatch(ctx context.Context, in dto.StockBatchRequest) (int, error)
	UpdateSettings(ctx context.Context, s entity.AppSettings)
}

// Service vistas y controles del catálogo.
type Service struct {
	store    Store
	validate *validator.Validate
}

// NewService construye el servicio sobre el contenedor.
func NewService(store Store) *Service {
	return &Service{store: store, validate: dto.NewValidator()}
}

// ──── Categorías ────

// DeleteCategory rechaza el borrado si algún ítem referencia la categoría.
// En ese caso no hay escritura ni auditoría.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if n := countByCategory(s.store.Items(), id); n > 0 {
		return &domain.CategoryInUseError{CategoryID: id, Count: n}
	}
	return s.store.DeleteCategory(ctx, id)
}

// Categories lista las categorías con la cantidad de ítems de cada una.
func (s *Service) Categories() []dto.CategoryResponse {
	items := s.store.Items()
	cats := s.store.Categories()
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, ItemCount: countByCategory(items, c.ID)})
	}
	return out
}

func countByCategory(items []entity.InventoryItem, id string) int {
	n := 0
	for _, it := range items {
		if it.CategoryID == id {
			n++
		}
	}
	return n
}

// ──── Panel ────

// Dashboard las cinco tarjetas del panel con los umbrales vigentes.
func (s *Service) Dashboard() dto.DashboardSummaryDTO {
	sum := inventory.Summarize(s.store.Items(), s.store.Settings(), s.store.Today())
	return dto.DashboardSummaryDTO{
		TotalItems:  sum.TotalItems,
		OutOfStock:  sum.OutOfStock,
		LowStock:    sum.LowStock,
		Expiring:    sum.Expiring,
		TotalValue:  sum.TotalValue,
		ValueLabel:  report.FormatBRL(sum.TotalValue),
		ExpiryDays:  sum.ExpiryDays,
		LowStockPct: sum.LowStockPct,
	}
}

// MetricItems ítems detrás de una tarjeta del panel.
func (s *Service) MetricItems(metric string) ([]dto.ItemResponse, error) {
	if !inventory.IsValidMetric(metric) {
		return nil, fmt.Errorf("%w: métrica %q", domain.ErrInvalidInput, metric)
	}
	settings := s.store.Settings()
	today := s.store.Today()
	items := inventory.FilterByMetric(s.store.Items(), metric, settings, today)
	return s.toItemResponses(items, settings, today), nil
}

// ──── Ítems ────

// ListItems búsqueda por nombre/categoría y orden opcional.
func (s *Service) ListItems(q dto.ItemListQuery) ([]dto.ItemResponse, error) {
	items := inventory.SearchItems(s.store.Items(), q.Search, q.CategoryID)
	if q.SortBy != "" {
		if !inventory.IsValidSortKey(q.SortBy) {
			return nil, fmt.Errorf("%w: orden %q", domain.ErrInvalidInput, q.SortBy)
		}
		items = inventory.SortItems(items, q.SortBy, q.Desc)
	}
	return s.toItemResponses(items, s.store.Settings(), s.store.Today()), nil
}

// Item un ítem por id.
func (s *Service) Item(id string) (dto.ItemResponse, error) {
	for _, it := range s.store.Items() {
		if it.ID == id {
			return s.toItemResponses([]entity.InventoryItem{it}, s.store.Settings(), s.store.Today())[0], nil
		}
	}
	return dto.ItemResponse{}, domain.ErrNotFound
}

// ItemResponse ítem con sus valores derivados.
func (s *Service) ItemResponse(it entity.InventoryItem) dto.ItemResponse {
	return s.toItemResponses([]entity.InventoryItem{it}, s.store.Settings(), s.store.Today())[0]
}

func (s *Service) toItemResponses(items []entity.InventoryItem, settings entity.AppSettings, today time.Time) []dto.ItemResponse {
	names := s.categoryNames()
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemResponse{
			ID:              it.ID,
			Name:            it.Name,
			Unit:            it.Unit,
			MinStock:        it.MinStock,
			CurrentStock:    it.CurrentStock,
			ValuePerUnit:    it.ValuePerUnit,
			TotalValue:      it.TotalValue(),
			LastCountDate:   it.LastCountDate,
			ExpiryDate:      it.ExpiryDate,
			DaysUntilExpiry: inventory.DaysUntilExpiry(it.ExpiryDate, today),
			Responsible:     it.Responsible,
			CategoryID:      it.CategoryID,
			CategoryName:    names[it.CategoryID],
			Status:          inventory.StockStatus(it, settings),
			Badges:          inventory.Badges(it, settings, today),
		})
	}
	return out
}

func (s *Service) categoryNames() map[string]string {
	cats := s.store.Categories()
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names
}

// ──── Planilla de conteo ────

// StockSheet filas de la planilla, opcionalmente filtradas por categoría.
func (s *Service) StockSheet(categoryID string) []dto.StockSheetRow {
	settings := s.store.Settings()
	today := s.store.Today()
	names := s.categoryNames()
	items := inventory.SearchItems(s.store.Items(), "", categoryID)
	out := make([]dto.StockSheetRow, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockSheetRow{
			ID:            it.ID,
			Name:          it.Name,
			Unit:          it.Unit,
			CategoryID:    it.CategoryID,
			CategoryName:  names[it.CategoryID],
			MinStock:      it.MinStock,
			CurrentStock:  it.CurrentStock,
			ExpiryDate:    it.ExpiryDate,
			LastCountDate: it.LastCountDate,
			Badges:        inventory.Badges(it, settings, today),
		})
	}
	return out
}

// SaveStockSheet guarda la planilla y resume cuántos ítems quedaron bajo
// mínimo o por vencer.
func (s *Service) SaveStockSheet(ctx context.Context, in dto.StockBatchRequest) (dto.StockBatchResponse, error) {
	n, err := s.store.UpdateStockBatch(ctx, in)
	if err != nil {
		return dto.StockBatchResponse{}, err
	}
	ids := make(map[string]struct{}, len(in.Updates))
	for _, u := range in.Updates {
		ids[u.ID] = struct{}{}
	}
	var saved []entity.InventoryItem
	for _, it := range s.store.Items() {
		if _, ok := ids[it.ID]; ok {
			saved = append(saved, it)
		}
	}
	fill := inventory.SummarizeFill(saved, s.store.Settings(), s.store.Today())
	fill.Saved = n
	return dto.StockBatchResponse{
		Saved:    fill.Saved,
		BelowMin: fill.BelowMin,
		Expiring: fill.Expiring,
		Message:  fill.Message(),
	}, nil
}

// ──── Usuarios ────

// Users lista las cuentas; status vacío o "all" no filtra.
func (s *Service) Users(status string) ([]dto.UserResponse, error) {
	switch status {
	case "", "all", entity.StatusActive, entity.StatusInactive:
	default:
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	users := s.store.Users()
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		if status != "" && status != "all" && u.Status != status {
			continue
		}
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// ──── Auditoría ────

// Logs búsqueda en detalle y nombre de usuario, filtro por acción y página.
func (s *Service) Logs(q dto.LogQuery) (dto.LogPage, error) {
	q.DefaultPage()
	if err := dto.Validate(s.validate, q); err != nil {
		return dto.LogPage{}, err
	}
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(q.Search))

	var matched []dto.LogResponse
	for _, l := range s.store.Logs() {
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if needle != "" &&
			!strings.Contains(folder.String(l.Details), needle) &&
			!strings.Contains(folder.String(l.UserName), needle) {
			continue
		}
		matched = append(matched, dto.LogResponse{
			ID: l.ID, Action: l.Action, Details: l.Details,
			UserID: l.UserID, UserName: l.UserName, Timestamp: l.Timestamp,
		})
	}

	total := len(matched)
	start := min(q.Offset, total)
	end := min(start+q.Limit, total)
	page := matched[start:end]
	if page == nil {
		page = []dto.LogResponse{}
	}
	return dto.LogPage{
		Items: page,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// ──── Ajustes ────

// Settings umbrales vigentes.
func (s *Service) Settings() dto.SettingsResponse {
	st := s.store.Settings()
	return dto.SettingsResponse{ExpiryThresholdDays: st.ExpiryThresholdDays, LowStockPercentage: st.LowStockPercentage}
}

// UpdateSettings valida rangos (0–100 para el porcentaje) y delega en el contenedor.
func (s *Service) UpdateSettings(ctx context.Context, in dto.SettingsRequest) (dto.SettingsResponse, error) {
	if err := dto.Validate(s.validate, in); err != nil {
		return dto.SettingsResponse{}, err
	}
	s.store.UpdateSettings(ctx, entity.AppSettings{
		ExpiryThresholdDays: in.ExpiryThresholdDays,
		LowStockPercentage:  in.LowStockPercentage,
	})
	return s.Settings(), nil
}
