package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	pool *pgxpool.Pool
}

// NewUnitRepository construye el adaptador de persistencia para unidades.
func NewUnitRepository(pool *pgxpool.Pool) *UnitRepo {
	return &UnitRepo{pool: pool}
}

// Create persiste una nueva unidad.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	query := `
		INSERT INTO units (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.Address, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM units WHERE id = $1`
	var u entity.Unit
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Name, &u.Address, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// List lista unidades con paginación.
func (r *UnitRepo) List(limit, offset int) ([]*entity.Unit, error) {
	query := `
		SELECT id, name, address, created_at, updated_at
		FROM units ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Address, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
