package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items. El stock inicia en 0 y solo
// se mueve vía el kardex.
type CreateItemRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

// ItemResponse un ítem en respuestas.
type ItemResponse struct {
	ID           string          `json:"id"`
	UnitID       string          `json:"unit_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ItemListResponse listado de ítems de una unidad.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
