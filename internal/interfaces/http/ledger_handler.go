package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LedgerHandler maneja las peticiones HTTP del kardex (protegido).
type LedgerHandler struct {
	uc    *ledger.LedgerUseCase
	query *ledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase, query *ledger.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc, query: query}
}

// RecordEntry godoc
// @Summary      Registrar entrada de stock
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "item_id, reason (PURCHASE|RETURN|ADJUSTMENT), quantity, unit_cost"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/entries [post]
func (h *LedgerHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if !parseBody(c, &in) {
		return nil
	}
	movement, err := h.uc.RecordInflow(c.Context(), ledger.MovementInput{
		UnitID:        GetUnitID(c),
		ActorID:       GetActorID(c),
		ItemID:        in.ItemID,
		Reason:        in.Reason,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		Notes:         in.Notes,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(movement))
}

// RecordExit godoc
// @Summary      Registrar salida de stock
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExitRequest  true  "item_id, reason (SALE|INTERNAL_CONSUMPTION|CLEANING_SUPPLIES|ADJUSTMENT), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/exits [post]
func (h *LedgerHandler) RecordExit(c *fiber.Ctx) error {
	var in dto.CreateExitRequest
	if !parseBody(c, &in) {
		return nil
	}
	movement, err := h.uc.RecordOutflow(c.Context(), ledger.MovementInput{
		UnitID:        GetUnitID(c),
		ActorID:       GetActorID(c),
		ItemID:        in.ItemID,
		Reason:        in.Reason,
		Quantity:      in.Quantity,
		Notes:         in.Notes,
		ReferenceID:   in.ReferenceID,
		ReferenceType: in.ReferenceType,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(movement))
}

// AdjustStock godoc
// @Summary      Ajustar stock con delta con signo (solo gerencial)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "item_id, delta (con signo), notes (obligatorio)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/adjustments [post]
func (h *LedgerHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	movement, err := h.uc.AdjustStock(c.Context(), ledger.AdjustInput{
		UnitID:  GetUnitID(c),
		ActorID: GetActorID(c),
		ItemID:  in.ItemID,
		Delta:   in.Delta,
		Notes:   in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(movement))
}

// RevertMovement godoc
// @Summary      Revertir un movimiento (compensación exacta, solo gerencial)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements/{id}/revert [post]
func (h *LedgerHandler) RevertMovement(c *fiber.Ctx) error {
	movement, err := h.uc.RevertMovement(c.Context(), c.Params("id"), GetActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(movement))
}

// EditNotes godoc
// @Summary      Editar las notas de un movimiento (sin efecto en el saldo)
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.EditNotesRequest  true  "notes"
// @Success      200   {object}  dto.MovementResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/movements/{id}/notes [patch]
func (h *LedgerHandler) EditNotes(c *fiber.Ctx) error {
	var in dto.EditNotesRequest
	if !parseBody(c, &in) {
		return nil
	}
	movement, err := h.uc.EditNotes(c.Context(), c.Params("id"), in.Notes, GetActorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(movement))
}

// SoftDelete godoc
// @Summary      Ocultar un movimiento del historial (soft delete, solo gerencial)
// @Description  Cambio de visibilidad, NO corrección financiera: el saldo no
//               se compensa. Para corregir el saldo usar revert o un ajuste.
// @Tags         ledger
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements/{id} [delete]
func (h *LedgerHandler) SoftDelete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Context(), c.Params("id"), GetActorID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Listar movimientos de la unidad (paginado, con filtros)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  false  "Filtrar por ítem"
// @Param        type          query  string  false  "IN u OUT"
// @Param        reason        query  string  false  "Motivo"
// @Param        performed_by  query  string  false  "Actor"
// @Param        from          query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to            query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        include_deleted query bool   false  "Incluir soft-deleted"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	if err := validate.Struct(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: validationDetails(err)})
	}
	q.DefaultPage()

	from, err := parseDate(q.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDate(q.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}

	filter := repository.MovementFilter{
		ItemID:         q.ItemID,
		MovementType:   q.Type,
		Reason:         q.Reason,
		PerformedBy:    q.PerformedBy,
		From:           from,
		To:             to,
		IncludeDeleted: q.IncludeDeleted,
	}
	movements, total, err := h.query.ListMovements(c.Context(), GetActorID(c), GetUnitID(c), filter, q.Limit, q.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Page:      dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, dto.ToMovementResponse(m))
	}
	return c.JSON(resp)
}

// GetItemHistory godoc
// @Summary      Historial completo de un ítem en un rango
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del ítem"
// @Param        from  query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/items/{id}/history [get]
func (h *LedgerHandler) GetItemHistory(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	from, err := parseDate(q.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDate(q.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	history, err := h.query.GetItemHistory(c.Context(), GetActorID(c), c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.MovementResponse, 0, len(history))
	for _, m := range history {
		resp = append(resp, dto.ToMovementResponse(m))
	}
	return c.JSON(resp)
}

// GetSummary godoc
// @Summary      Resumen del período (entradas, salidas, neto, por motivo)
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ledger/summary [get]
func (h *LedgerHandler) GetSummary(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	from, err := parseDate(q.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDate(q.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	summary, err := h.query.GetSummaryByPeriod(c.Context(), GetActorID(c), GetUnitID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	byReason := make(map[string]decimal.Decimal, len(summary.ByReason))
	for reason, net := range summary.ByReason {
		byReason[reason] = net
	}
	return c.JSON(dto.SummaryResponse{
		TotalIn:   summary.TotalIn,
		TotalOut:  summary.TotalOut,
		NetChange: summary.NetChange,
		ByReason:  byReason,
	})
}
