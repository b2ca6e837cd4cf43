package dto

// PageRequest ventana de lectura sobre el registro de auditoría (?limit=&offset=).
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage completa la ventana: 20 entradas desde la más reciente.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse ventana devuelta y cantidad de entradas que pasan los filtros.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error de la API (code estable, message para mostrar).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
