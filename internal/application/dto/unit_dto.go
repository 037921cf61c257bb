package dto

import "time"

// CreateUnitRequest body para POST /api/units.
type CreateUnitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Address string `json:"address,omitempty" validate:"omitempty,max=250"`
}

// UnitResponse una unidad de negocio en respuestas.
type UnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitListResponse listado de unidades.
type UnitListResponse struct {
	Units []UnitResponse `json:"units"`
	Page  PageResponse   `json:"page"`
}
