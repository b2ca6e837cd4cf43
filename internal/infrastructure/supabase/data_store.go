package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
	"github.com/jhoicas/stockrest/internal/infrastructure/remote"
	"github.com/jhoicas/stockrest/pkg/logger"
)

var _ repository.DataStore = (*DataStore)(nil)

const (
	preferMinimal        = "return=minimal"
	preferRepresentation = "return=representation"
)

// DataStore implementación del puerto DataStore sobre PostgREST.
type DataStore struct {
	c   *Client
	log *logger.Logger
}

// NewDataStore construye el adaptador.
func NewDataStore(c *Client, log *logger.Logger) *DataStore {
	return &DataStore{c: c, log: log}
}

// listQuery arma select/order/limit de una lectura completa.
func listQuery(t remote.Table) url.Values {
	q := url.Values{}
	q.Set("select", t.ColumnList())
	dir := "asc"
	if t.Desc {
		dir = "desc"
	}
	q.Set("order", t.OrderBy+"."+dir)
	if t.Limit > 0 {
		q.Set("limit", strconv.Itoa(t.Limit))
	}
	return q
}

func byID(id string) url.Values {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return q
}

func fetch[R any, E any](ctx context.Context, s *DataStore, t remote.Table, decode func(R) (E, error)) ([]E, error) {
	var rows []R
	if err := s.c.do(ctx, http.MethodGet, t.Name, listQuery(t), nil, "", &rows); err != nil {
		return nil, err
	}
	out, rejected := remote.DecodeAll(rows, decode)
	for _, rerr := range rejected {
		s.log.Warn().Err(rerr).Str("table", t.Name).Msg("fila remota descartada")
	}
	return out, nil
}

// FetchUsers lee users ordenado por nombre.
func (s *DataStore) FetchUsers(ctx context.Context) ([]entity.User, error) {
	return fetch(ctx, s, remote.Users, remote.UserFromRow)
}

// FetchCategories lee categories ordenado por nombre.
func (s *DataStore) FetchCategories(ctx context.Context) ([]entity.Category, error) {
	return fetch(ctx, s, remote.Categories, remote.CategoryFromRow)
}

// FetchItems lee items ordenado por nombre.
func (s *DataStore) FetchItems(ctx context.Context) ([]entity.InventoryItem, error) {
	return fetch(ctx, s, remote.Items, remote.ItemFromRow)
}

// FetchLogs lee las últimas 50 entradas, más recientes primero.
func (s *DataStore) FetchLogs(ctx context.Context) ([]entity.Log, error) {
	return fetch(ctx, s, remote.Logs, remote.LogFromRow)
}

// FindActiveUserByEmail devuelve nil, nil si no hay cuenta activa con ese email.
func (s *DataStore) FindActiveUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	q := url.Values{}
	q.Set("select", remote.Users.ColumnList())
	q.Set("email", "eq."+email)
	q.Set("status", "eq."+entity.StatusActive)
	q.Set("limit", "1")
	var rows []remote.UserRow
	if err := s.c.do(ctx, http.MethodGet, remote.Users.Name, q, nil, "", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	u, err := remote.UserFromRow(rows[0])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ── Escrituras ────────────────────────────────────────────────────────────────

func (s *DataStore) insert(ctx context.Context, table string, row any) error {
	return mapError(s.c.do(ctx, http.MethodPost, table, nil, row, preferMinimal, nil))
}

// mutate aplica PATCH o DELETE sobre id y exige que afecte una fila.
func (s *DataStore) mutate(ctx context.Context, method, table, id string, body any) error {
	q := byID(id)
	q.Set("select", "id")
	var touched []struct {
		ID string `json:"id"`
	}
	if err := s.c.do(ctx, method, table, q, body, preferRepresentation, &touched); err != nil {
		return mapError(err)
	}
	if len(touched) == 0 {
		return fmt.Errorf("supabase: %s %s %s: %w", method, table, id, domain.ErrNotFound)
	}
	return nil
}

// mapError traduce 409 (violación de unicidad) a domain.ErrConflict.
func mapError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	}
	return err
}

// userPatch columnas editables de users.
type userPatch struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
	Status   *string `json:"status"`
}

// InsertUser persiste un usuario.
func (s *DataStore) InsertUser(ctx context.Context, u *entity.User) error {
	return s.insert(ctx, remote.Users.Name, remote.UserToRow(*u))
}

// UpdateUser reemplaza nombre, email, rol, contraseña y estado.
func (s *DataStore) UpdateUser(ctx context.Context, u *entity.User) error {
	r := remote.UserToRow(*u)
	return s.mutate(ctx, http.MethodPatch, remote.Users.Name, u.ID, userPatch{
		Name: r.Name, Email: r.Email, Role: r.Role, Password: r.Password, Status: r.Status,
	})
}

// InsertCategory persiste una categoría.
func (s *DataStore) InsertCategory(ctx context.Context, c *entity.Category) error {
	return s.insert(ctx, remote.Categories.Name, remote.CategoryToRow(*c))
}

// DeleteCategory borra una categoría sin verificar referencias.
func (s *DataStore) DeleteCategory(ctx context.Context, id string) error {
	return s.mutate(ctx, http.MethodDelete, remote.Categories.Name, id, nil)
}

// InsertItem persiste un ítem.
func (s *DataStore) InsertItem(ctx context.Context, it *entity.InventoryItem) error {
	return s.insert(ctx, remote.Items.Name, remote.ItemToRow(*it))
}

// UpdateItem reemplaza todas las columnas del ítem.
func (s *DataStore) UpdateItem(ctx context.Context, it *entity.InventoryItem) error {
	return s.mutate(ctx, http.MethodPatch, remote.Items.Name, it.ID, remote.ItemToRow(*it))
}

// DeleteItem borra un ítem.
func (s *DataStore) DeleteItem(ctx context.Context, id string) error {
	return s.mutate(ctx, http.MethodDelete, remote.Items.Name, id, nil)
}

// UpdateItemStock escribe solo los campos del conteo masivo.
func (s *DataStore) UpdateItemStock(ctx context.Context, id string, patch entity.StockPatch) error {
	return s.mutate(ctx, http.MethodPatch, remote.Items.Name, id, remote.StockPatchToRow(patch))
}

// InsertLog agrega una entrada de auditoría.
func (s *DataStore) InsertLog(ctx context.Context, l *entity.Log) error {
	return s.insert(ctx, remote.Logs.Name, remote.LogToRow(*l))
}
