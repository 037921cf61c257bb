package ledger

import (
	"fmt"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Gate puerta de autorización del ledger: resuelve rol y estado del actor en
// el directorio de personal y decide si la operación está permitida.
// Decisión pura sobre la tabla de capacidades; sin efectos secundarios.
type Gate struct {
	actors repository.ActorRepository
}

// NewGate construye la puerta de autorización.
func NewGate(actors repository.ActorRepository) *Gate {
	return &Gate{actors: actors}
}

// Authorize devuelve el actor si está activo y su rol permite la operación.
// Actor desconocido, inactivo o sin la capacidad -> domain.ErrUnauthorized.
// Falla del lookup -> domain.ErrActorUnavailable (se trata como denegación
// en la capa HTTP, nunca como caída).
func (g *Gate) Authorize(actorID string, op entity.Operation) (*entity.Actor, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	actor, err := g.actors.GetByID(actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrActorUnavailable, err)
	}
	if actor == nil || !actor.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if !entity.RoleAllows(actor.Role, op) {
		return nil, domain.ErrUnauthorized
	}
	return actor, nil
}
