// Package remote define el esquema de cable del almacén remoto: las cuatro tablas,
// sus columnas en snake_case y la tabla de traducción con los campos del dominio.
// Los adaptadores (postgres, supabase) comparten estos registros.
package remote

import "strings"

// Field par campo de dominio ⇄ columna remota.
type Field struct {
	Domain string
	Wire   string
}

// Table describe una tabla remota y cómo se lee completa.
type Table struct {
	Name    string
	Fields  []Field
	OrderBy string
	Desc    bool
	Limit   int // 0 = sin límite
}

// Columns devuelve los nombres de columna en orden.
func (t Table) Columns() []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Wire
	}
	return out
}

// ColumnList columnas separadas por coma, para SELECT y select=.
func (t Table) ColumnList() string { return strings.Join(t.Columns(), ",") }

// Wire traduce un campo de dominio a su columna. ok es false si no existe.
func (t Table) Wire(domain string) (string, bool) {
	for _, f := range t.Fields {
		if f.Domain == domain {
			return f.Wire, true
		}
	}
	return "", false
}

// Domain traduce una columna a su campo de dominio.
func (t Table) Domain(wire string) (string, bool) {
	for _, f := range t.Fields {
		if f.Wire == wire {
			return f.Domain, true
		}
	}
	return "", false
}

// LogsLimit cantidad de entradas de auditoría que se leen del remoto.
const LogsLimit = 50

// Tablas remotas.
var (
	Users = Table{
		Name: "users",
		Fields: []Field{
			{"id", "id"},
			{"name", "name"},
			{"email", "email"},
			{"role", "role"},
			{"password", "password"},
			{"status", "status"},
			{"createdAt", "created_at"},
		},
		OrderBy: "name",
	}

	Categories = Table{
		Name: "categories",
		Fields: []Field{
			{"id", "id"},
			{"name", "name"},
		},
		OrderBy: "name",
	}

	Items = Table{
		Name: "items",
		Fields: []Field{
			{"id", "id"},
			{"name", "name"},
			{"unit", "unit"},
			{"minStock", "min_stock"},
			{"currentStock", "current_stock"},
			{"valuePerUnit", "value_per_unit"},
			{"lastCountDate", "last_count_date"},
			{"expiryDate", "expiry_date"},
			{"responsible", "responsible"},
			{"categoryId", "category_id"},
		},
		OrderBy: "name",
	}

	Logs = Table{
		Name: "logs",
		Fields: []Field{
			{"id", "id"},
			{"action", "action"},
			{"details", "details"},
			{"userId", "user_id"},
			{"userName", "user_name"},
			{"timestamp", "timestamp"},
		},
		OrderBy: "timestamp",
		Desc:    true,
		Limit:   LogsLimit,
	}

	// StockPatchFields columnas que toca el conteo masivo.
	StockPatchFields = []Field{
		{"currentStock", "current_stock"},
		{"expiryDate", "expiry_date"},
		{"lastCountDate", "last_count_date"},
		{"responsible", "responsible"},
	}
)
