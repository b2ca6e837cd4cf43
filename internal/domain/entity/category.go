package entity

// Category agrupa ítems del inventario (Grãos, Carnes, ...).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
