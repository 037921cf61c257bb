package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem. Nombre único por unidad.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, unit_id, name, current_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UnitID, item.Name, item.CurrentStock,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `
		SELECT id, unit_id, name, current_stock, created_at, updated_at
		FROM items WHERE id = $1`
	var item entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&item.ID, &item.UnitID, &item.Name, &item.CurrentStock,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// ListByUnit lista ítems de una unidad con paginación.
func (r *ItemRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, unit_id, name, current_stock, created_at, updated_at
		FROM items WHERE unit_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, unitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var item entity.Item
		if err := rows.Scan(&item.ID, &item.UnitID, &item.Name, &item.CurrentStock,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// IncrementStock suma qty al saldo en una sentencia atómica (sin precondición).
func (r *ItemRepo) IncrementStock(itemID string, qty decimal.Decimal) error {
	query := `
		UPDATE items
		SET current_stock = current_stock + $1, updated_at = now()
		WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, qty, itemID)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment stock: ítem %s no existe", itemID)
	}
	return nil
}

// TryDecrementStock resta qty SOLO si el saldo alcanza, en UNA sentencia
// condicional. El éxito/fracaso de esta sentencia (RowsAffected) es la única
// fuente de verdad sobre disponibilidad: leer el saldo y restar después son
// dos operaciones, y dos salidas concurrentes pasarían ambas el chequeo
// contra una lectura vieja y dejarían el saldo negativo.
func (r *ItemRepo) TryDecrementStock(itemID string, qty decimal.Decimal) (bool, error) {
	query := `
		UPDATE items
		SET current_stock = current_stock - $1, updated_at = now()
		WHERE id = $2 AND current_stock >= $1`
	tag, err := r.q.Exec(context.Background(), query, qty, itemID)
	if err != nil {
		return false, fmt.Errorf("conditional decrement: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
