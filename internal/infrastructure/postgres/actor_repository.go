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

var _ repository.ActorRepository = (*ActorRepo)(nil)

// ActorRepo implementación del directorio de personal sobre PostgreSQL.
type ActorRepo struct {
	pool *pgxpool.Pool
}

// NewActorRepository construye el adaptador del directorio.
func NewActorRepository(pool *pgxpool.Pool) *ActorRepo {
	return &ActorRepo{pool: pool}
}

// GetByID obtiene un actor por ID (nil si no existe).
func (r *ActorRepo) GetByID(id string) (*entity.Actor, error) {
	query := `
		SELECT id, unit_id, name, role, is_active, created_at, updated_at
		FROM actors WHERE id = $1`
	var a entity.Actor
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.UnitID, &a.Name, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return &a, nil
}
