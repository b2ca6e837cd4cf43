package remote

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockrest/internal/domain/entity"
)

// ErrInvalidRow fila remota sin los campos obligatorios.
var ErrInvalidRow = errors.New("remote: fila inválida")

func missing(table, column string) error {
	return fmt.Errorf("%w: %s.%s vacío", ErrInvalidRow, table, column)
}

// ── Registros de cable ────────────────────────────────────────────────────────
// Los tags json sirven a la API REST y los db a pgx.RowToStructByName.

// UserRow fila de users.
type UserRow struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Role      *string    `json:"role" db:"role"`
	Password  *string    `json:"password" db:"password"`
	Status    *string    `json:"status" db:"status"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// Values valores en el orden de Users.Fields.
func (r UserRow) Values() []any {
	return []any{r.ID, r.Name, r.Email, r.Role, r.Password, r.Status, r.CreatedAt}
}

// CategoryRow fila de categories.
type CategoryRow struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Values valores en el orden de Categories.Fields.
func (r CategoryRow) Values() []any { return []any{r.ID, r.Name} }

// ItemRow fila de items. Los numéricos aceptan NULL.
type ItemRow struct {
	ID            string              `json:"id" db:"id"`
	Name          string              `json:"name" db:"name"`
	Unit          *string             `json:"unit" db:"unit"`
	MinStock      decimal.NullDecimal `json:"min_stock" db:"min_stock"`
	CurrentStock  decimal.NullDecimal `json:"current_stock" db:"current_stock"`
	ValuePerUnit  decimal.NullDecimal `json:"value_per_unit" db:"value_per_unit"`
	LastCountDate *string             `json:"last_count_date" db:"last_count_date"`
	ExpiryDate    *string             `json:"expiry_date" db:"expiry_date"`
	Responsible   *string             `json:"responsible" db:"responsible"`
	CategoryID    *string             `json:"category_id" db:"category_id"`
}

// Values valores en el orden de Items.Fields.
func (r ItemRow) Values() []any {
	return []any{
		r.ID, r.Name, r.Unit, r.MinStock, r.CurrentStock, r.ValuePerUnit,
		r.LastCountDate, r.ExpiryDate, r.Responsible, r.CategoryID,
	}
}

// LogRow fila de logs.
type LogRow struct {
	ID        string    `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	Details   *string   `json:"details" db:"details"`
	UserID    *string   `json:"user_id" db:"user_id"`
	UserName  *string   `json:"user_name" db:"user_name"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// Values valores en el orden de Logs.Fields.
func (r LogRow) Values() []any {
	return []any{r.ID, r.Action, r.Details, r.UserID, r.UserName, r.Timestamp}
}

// StockPatchRow cuerpo del PATCH del conteo masivo.
type StockPatchRow struct {
	CurrentStock  decimal.Decimal `json:"current_stock"`
	ExpiryDate    string          `json:"expiry_date"`
	LastCountDate string          `json:"last_count_date"`
	Responsible   string          `json:"responsible"`
}

// Values valores en el orden de StockPatchFields.
func (r StockPatchRow) Values() []any {
	return []any{r.CurrentStock, r.ExpiryDate, r.LastCountDate, r.Responsible}
}

// ── Traducción dominio ⇄ cable ───────────────────────────────────────────────

// UserFromRow valida y traduce una fila de users.
// Rol ausente se lee como staff y estado ausente como inactive.
func UserFromRow(r UserRow) (entity.User, error) {
	switch {
	case r.ID == "":
		return entity.User{}, missing(Users.Name, "id")
	case r.Name == "":
		return entity.User{}, missing(Users.Name, "name")
	case r.Email == "":
		return entity.User{}, missing(Users.Name, "email")
	}
	u := entity.User{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Role:     orDefault(r.Role, entity.RoleStaff),
		Password: deref(r.Password),
		Status:   orDefault(r.Status, entity.StatusInactive),
	}
	if r.CreatedAt != nil {
		u.CreatedAt = r.CreatedAt.UTC()
	}
	return u, nil
}

// UserToRow traduce un usuario a su fila.
func UserToRow(u entity.User) UserRow {
	r := UserRow{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     ptr(u.Role),
		Password: ptr(u.Password),
		Status:   ptr(u.Status),
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt.UTC()
		r.CreatedAt = &t
	}
	return r
}

// CategoryFromRow valida y traduce una fila de categories.
func CategoryFromRow(r CategoryRow) (entity.Category, error) {
	switch {
	case r.ID == "":
		return entity.Category{}, missing(Categories.Name, "id")
	case r.Name == "":
		return entity.Category{}, missing(Categories.Name, "name")
	}
	return entity.Category{ID: r.ID, Name: r.Name}, nil
}

// CategoryToRow traduce una categoría a su fila.
func CategoryToRow(c entity.Category) CategoryRow {
	return CategoryRow{ID: c.ID, Name: c.Name}
}

// ItemFromRow valida y traduce una fila de items. Stock NULL se lee como 0.
func ItemFromRow(r ItemRow) (entity.InventoryItem, error) {
	switch {
	case r.ID == "":
		return entity.InventoryItem{}, missing(Items.Name, "id")
	case r.Name == "":
		return entity.InventoryItem{}, missing(Items.Name, "name")
	}
	return entity.InventoryItem{
		ID:            r.ID,
		Name:          r.Name,
		Unit:          deref(r.Unit),
		MinStock:      orZero(r.MinStock),
		CurrentStock:  orZero(r.CurrentStock),
		ValuePerUnit:  r.ValuePerUnit,
		LastCountDate: deref(r.LastCountDate),
		ExpiryDate:    deref(r.ExpiryDate),
		Responsible:   deref(r.Responsible),
		CategoryID:    deref(r.CategoryID),
	}, nil
}

// ItemToRow traduce un ítem a su fila.
func ItemToRow(it entity.InventoryItem) ItemRow {
	return ItemRow{
		ID:            it.ID,
		Name:          it.Name,
		Unit:          ptr(it.Unit),
		MinStock:      decimal.NewNullDecimal(it.MinStock),
		CurrentStock:  decimal.NewNullDecimal(it.CurrentStock),
		ValuePerUnit:  it.ValuePerUnit,
		LastCountDate: ptr(it.LastCountDate),
		ExpiryDate:    ptr(it.ExpiryDate),
		Responsible:   ptr(it.Responsible),
		CategoryID:    ptr(it.CategoryID),
	}
}

// StockPatchToRow traduce el conteo masivo a su cuerpo de actualización.
func StockPatchToRow(p entity.StockPatch) StockPatchRow {
	return StockPatchRow{
		CurrentStock:  p.CurrentStock,
		ExpiryDate:    p.ExpiryDate,
		LastCountDate: p.LastCountDate,
		Responsible:   p.Responsible,
	}
}

// LogFromRow valida y traduce una fila de logs.
func LogFromRow(r LogRow) (entity.Log, error) {
	switch {
	case r.ID == "":
		return entity.Log{}, missing(Logs.Name, "id")
	case !entity.IsValidAction(r.Action):
		return entity.Log{}, missing(Logs.Name, "action")
	case r.Timestamp.IsZero():
		return entity.Log{}, missing(Logs.Name, "timestamp")
	}
	return entity.Log{
		ID:        r.ID,
		Action:    r.Action,
		Details:   deref(r.Details),
		UserID:    deref(r.UserID),
		UserName:  deref(r.UserName),
		Timestamp: r.Timestamp.UTC(),
	}, nil
}

// LogToRow traduce una entrada de auditoría a su fila.
func LogToRow(l entity.Log) LogRow {
	return LogRow{
		ID:        l.ID,
		Action:    l.Action,
		Details:   ptr(l.Details),
		UserID:    ptr(l.UserID),
		UserName:  ptr(l.UserName),
		Timestamp: l.Timestamp.UTC(),
	}
}

// DecodeAll traduce un lote de filas. Las filas inválidas se descartan y se
// devuelven sus errores para que el adaptador los registre.
func DecodeAll[R any, E any](rows []R, decode func(R) (E, error)) ([]E, []error) {
	out := make([]E, 0, len(rows))
	var rejected []error
	for _, r := range rows {
		e, err := decode(r)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		out = append(out, e)
	}
	return out, rejected
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func ptr(s string) *string { return &s }

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
