package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y límites a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ShortageErrorResponse cuerpo 400 cuando el stock no alcanza para consumir.
type ShortageErrorResponse struct {
	Code               string              `json:"code"`
	Message            string              `json:"message"`
	MissingIngredients []MissingIngredient `json:"missingIngredients"`
}

// OrderStateErrorResponse cuerpo 400 al operar sobre un pedido terminal.
type OrderStateErrorResponse struct {
	Code        string  `json:"code"`
	Message     string  `json:"message"`
	Status      string  `json:"status"`
	CompletedAt *string `json:"completedAt,omitempty"`
}
