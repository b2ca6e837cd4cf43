package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockrest/internal/domain"
	"github.com/jhoicas/stockrest/internal/domain/entity"
	"github.com/jhoicas/stockrest/internal/domain/repository"
	"github.com/jhoicas/stockrest/internal/infrastructure/remote"
	"github.com/jhoicas/stockrest/pkg/logger"
)

var _ repository.DataStore = (*DataStore)(nil)

// DataStore implementación del puerto DataStore sobre PostgreSQL.
// El SQL se arma con la tabla de traducción de remote, así columnas y registros no divergen.
type DataStore struct {
	q   Querier
	log *logger.Logger
}

// NewDataStore construye el adaptador. Pasar pool o tx (Querier).
func NewDataStore(q Querier, log *logger.Logger) *DataStore {
	return &DataStore{q: q, log: log}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func selectAll(t remote.Table) string {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", t.ColumnList(), t.Name, t.OrderBy)
	if t.Desc {
		q += " DESC"
	}
	if t.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", t.Limit)
	}
	return q
}

// fetch lee una tabla completa, decodifica por nombre de columna y descarta filas inválidas.
func fetch[R any, E any](ctx context.Context, s *DataStore, t remote.Table, decode func(R) (E, error)) ([]E, error) {
	rows, err := s.q.Query(ctx, selectAll(t))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.Name, err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.Name, err)
	}
	out, rejected := remote.DecodeAll(recs, decode)
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
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1 AND status = $2 LIMIT 1", remote.Users.ColumnList())
	rows, err := s.q.Query(ctx, query, email, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[remote.UserRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	u, err := remote.UserFromRow(rec)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ── Escrituras ────────────────────────────────────────────────────────────────

func (s *DataStore) insert(ctx context.Context, t remote.Table, values []any) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, t.ColumnList(), placeholders(len(values)))
	if _, err := s.q.Exec(ctx, query, values...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s: %w", t.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert %s: %w", t.Name, err)
	}
	return nil
}

// update actualiza las columnas indicadas de la fila id. Sin fila afectada devuelve ErrNotFound.
func (s *DataStore) update(ctx context.Context, table string, cols []string, id string, values []any) error {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", table, assignments(cols, 2))
	args := append([]any{id}, values...)
	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update %s: %w", table, domain.ErrConflict)
		}
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s %s: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

func (s *DataStore) delete(ctx context.Context, table, id string) error {
	tag, err := s.q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %s: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

// InsertUser persiste un usuario. Email duplicado devuelve domain.ErrConflict.
func (s *DataStore) InsertUser(ctx context.Context, u *entity.User) error {
	return s.insert(ctx, remote.Users, remote.UserToRow(*u).Values())
}

// UpdateUser reemplaza nombre, email, rol, contraseña y estado.
func (s *DataStore) UpdateUser(ctx context.Context, u *entity.User) error {
	r := remote.UserToRow(*u)
	return s.update(ctx, remote.Users.Name,
		[]string{"name", "email", "role", "password", "status"}, u.ID,
		[]any{r.Name, r.Email, r.Role, r.Password, r.Status})
}

// InsertCategory persiste una categoría.
func (s *DataStore) InsertCategory(ctx context.Context, c *entity.Category) error {
	return s.insert(ctx, remote.Categories, remote.CategoryToRow(*c).Values())
}

// DeleteCategory borra una categoría sin verificar referencias.
func (s *DataStore) DeleteCategory(ctx context.Context, id string) error {
	return s.delete(ctx, remote.Categories.Name, id)
}

// InsertItem persiste un ítem.
func (s *DataStore) InsertItem(ctx context.Context, it *entity.InventoryItem) error {
	return s.insert(ctx, remote.Items, remote.ItemToRow(*it).Values())
}

// UpdateItem reemplaza todas las columnas salvo el id.
func (s *DataStore) UpdateItem(ctx context.Context, it *entity.InventoryItem) error {
	cols := remote.Items.Columns()[1:]
	vals := remote.ItemToRow(*it).Values()[1:]
	return s.update(ctx, remote.Items.Name, cols, it.ID, vals)
}

// DeleteItem borra un ítem.
func (s *DataStore) DeleteItem(ctx context.Context, id string) error {
	return s.delete(ctx, remote.Items.Name, id)
}

// UpdateItemStock escribe solo existencia, vencimiento, fecha de conteo y responsable.
func (s *DataStore) UpdateItemStock(ctx context.Context, id string, patch entity.StockPatch) error {
	cols := make([]string, len(remote.StockPatchFields))
	for i, f := range remote.StockPatchFields {
		cols[i] = f.Wire
	}
	return s.update(ctx, remote.Items.Name, cols, id, remote.StockPatchToRow(patch).Values())
}

// InsertLog agrega una entrada de auditoría.
func (s *DataStore) InsertLog(ctx context.Context, l *entity.Log) error {
	return s.insert(ctx, remote.Logs, remote.LogToRow(*l).Values())
}
