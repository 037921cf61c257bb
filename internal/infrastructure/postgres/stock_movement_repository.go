package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, unit_id, item_id, movement_type, reason, quantity, unit_cost,
	performed_by, reference_id, reference_type, notes, reverted, created_at, deleted_at`

// Create persiste un movimiento del kardex.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.UnitID, m.ItemID, m.MovementType, m.Reason, m.Quantity, m.UnitCost,
		m.PerformedBy, nullIfEmpty(m.ReferenceID), nullIfEmpty(m.ReferenceType),
		m.Notes, m.Reverted, m.CreatedAt, m.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Incluye soft-deleted: el caller
// decide qué hacer con ellos (los listados sí los excluyen por defecto).
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene y bloquea la fila del movimiento (SELECT FOR UPDATE).
// Usar solo dentro de la transacción de reversión: serializa dos reversiones
// concurrentes del mismo movimiento.
func (r *StockMovementRepo) GetByIDForUpdate(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// MarkReverted voltea el flag de forma condicional. false = ya estaba revertido.
func (r *StockMovementRepo) MarkReverted(id string) (bool, error) {
	query := `UPDATE stock_movements SET reverted = true WHERE id = $1 AND reverted = false`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return false, fmt.Errorf("mark reverted: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateNotes edita solo las notas de un movimiento no borrado.
func (r *StockMovementRepo) UpdateNotes(id, notes string) (bool, error) {
	query := `UPDATE stock_movements SET notes = $1 WHERE id = $2 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, notes, id)
	if err != nil {
		return false, fmt.Errorf("update notes: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SoftDelete marca deleted_at de forma condicional. No toca el saldo.
func (r *StockMovementRepo) SoftDelete(id string, at time.Time) (bool, error) {
	query := `UPDATE stock_movements SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, at, id)
	if err != nil {
		return false, fmt.Errorf("soft delete: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List devuelve una página de movimientos de la unidad más el total de filas
// del mismo predicado (para paginación del cliente).
func (r *StockMovementRepo) List(unitID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	where, args := buildWhere(unitID, f)

	var total int
	countQuery := `SELECT count(*) FROM stock_movements ` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+movementColumns+` FROM stock_movements %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByItem historial completo de un ítem en un rango (sin paginación),
// excluyendo soft-deleted.
func (r *StockMovementRepo) ListByItem(itemID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE item_id = $1 AND deleted_at IS NULL`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Summary agrega el período por motivo y tipo con el MISMO predicado de
// exclusión que mantiene el saldo (reverted = false, deleted_at IS NULL);
// así el cambio neto de todo el tiempo siempre cuadra con current_stock.
func (r *StockMovementRepo) Summary(unitID string, from, to *time.Time) (*entity.LedgerSummary, error) {
	query := `
		SELECT reason, movement_type, COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE unit_id = $1 AND reverted = false AND deleted_at IS NULL`
	args := []any{unitID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " GROUP BY reason, movement_type"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	summary := &entity.LedgerSummary{
		TotalIn:   decimal.Zero,
		TotalOut:  decimal.Zero,
		NetChange: decimal.Zero,
		ByReason:  map[string]decimal.Decimal{},
	}
	for rows.Next() {
		var reason, movementType string
		var qty decimal.Decimal
		if err := rows.Scan(&reason, &movementType, &qty); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		signed := qty
		if movementType == entity.MovementTypeOUT {
			signed = qty.Neg()
			summary.TotalOut = summary.TotalOut.Add(qty)
		} else {
			summary.TotalIn = summary.TotalIn.Add(qty)
		}
		summary.ByReason[reason] = summary.ByReason[reason].Add(signed)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	summary.NetChange = summary.TotalIn.Sub(summary.TotalOut)
	return summary, nil
}

// buildWhere arma el predicado de List con placeholders posicionales.
func buildWhere(unitID string, f repository.MovementFilter) (string, []any) {
	where := "WHERE unit_id = $1"
	args := []any{unitID}
	pos := 2
	add := func(cond string, val any) {
		where += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}
	if !f.IncludeDeleted {
		where += " AND deleted_at IS NULL"
	}
	if f.ItemID != "" {
		add("item_id = $%d", f.ItemID)
	}
	if f.MovementType != "" {
		add("movement_type = $%d", f.MovementType)
	}
	if f.Reason != "" {
		add("reason = $%d", f.Reason)
	}
	if f.PerformedBy != "" {
		add("performed_by = $%d", f.PerformedBy)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	return where, args
}

func (r *StockMovementRepo) scanOne(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var refID, refType *string
	err := row.Scan(
		&m.ID, &m.UnitID, &m.ItemID, &m.MovementType, &m.Reason, &m.Quantity, &m.UnitCost,
		&m.PerformedBy, &refID, &refType, &m.Notes, &m.Reverted, &m.CreatedAt, &m.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	if refType != nil {
		m.ReferenceType = *refType
	}
	return &m, nil
}

func (r *StockMovementRepo) scanAll(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var refID, refType *string
		if err := rows.Scan(
			&m.ID, &m.UnitID, &m.ItemID, &m.MovementType, &m.Reason, &m.Quantity, &m.UnitCost,
			&m.PerformedBy, &refID, &refType, &m.Notes, &m.Reverted, &m.CreatedAt, &m.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if refID != nil {
			m.ReferenceID = *refID
		}
		if refType != nil {
			m.ReferenceType = *refType
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
