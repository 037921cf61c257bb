package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// CreateEntryRequest body para POST /api/ledger/entries (entrada de stock).
type CreateEntryRequest struct {
	ItemID        string          `json:"item_id" validate:"required,uuid4"`
	Reason        string          `json:"reason" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Notes         string          `json:"notes,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty" validate:"omitempty,uuid4"`
	ReferenceType string          `json:"reference_type,omitempty"`
}

// CreateExitRequest body para POST /api/ledger/exits (salida de stock).
// Sin unit_cost: el costo unitario solo tiene significado en entradas.
type CreateExitRequest struct {
	ItemID        string          `json:"item_id" validate:"required,uuid4"`
	Reason        string          `json:"reason" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty" validate:"omitempty,uuid4"`
	ReferenceType string          `json:"reference_type,omitempty"`
}

// AdjustStockRequest body para POST /api/ledger/adjustments.
// Delta con signo; notes obligatorio.
type AdjustStockRequest struct {
	ItemID string          `json:"item_id" validate:"required,uuid4"`
	Delta  decimal.Decimal `json:"delta"`
	Notes  string          `json:"notes" validate:"required"`
}

// EditNotesRequest body para PATCH /api/ledger/movements/:id/notes.
type EditNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// ListMovementsQuery filtros para GET /api/ledger/movements.
type ListMovementsQuery struct {
	PageRequest
	ItemID         string `query:"item_id" validate:"omitempty,uuid4"`
	Type           string `query:"type" validate:"omitempty,oneof=IN OUT"`
	Reason         string `query:"reason"`
	PerformedBy    string `query:"performed_by" validate:"omitempty,uuid4"`
	From           string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To             string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	IncludeDeleted bool   `query:"include_deleted"`
}

// PeriodQuery rango de fechas para historial y resumen.
type PeriodQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// MovementResponse un movimiento del kardex en respuestas.
type MovementResponse struct {
	ID            string          `json:"id"`
	UnitID        string          `json:"unit_id"`
	ItemID        string          `json:"item_id"`
	MovementType  string          `json:"movement_type"`
	Reason        string          `json:"reason"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	PerformedBy   string          `json:"performed_by"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Reverted      bool            `json:"reverted"`
	CreatedAt     time.Time       `json:"created_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// SummaryResponse agregado del período para GET /api/ledger/summary.
type SummaryResponse struct {
	TotalIn   decimal.Decimal            `json:"total_in"`
	TotalOut  decimal.Decimal            `json:"total_out"`
	NetChange decimal.Decimal            `json:"net_change"`
	ByReason  map[string]decimal.Decimal `json:"by_reason"`
}

// ToMovementResponse mapea la entidad a su DTO de respuesta.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		UnitID:        m.UnitID,
		ItemID:        m.ItemID,
		MovementType:  m.MovementType,
		Reason:        m.Reason,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		PerformedBy:   m.PerformedBy,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		Notes:         m.Notes,
		Reverted:      m.Reverted,
		CreatedAt:     m.CreatedAt,
		DeletedAt:     m.DeletedAt,
	}
}
