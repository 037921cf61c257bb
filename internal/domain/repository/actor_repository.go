package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// ActorRepository puerto del directorio de personal (rol + estado activo).
// Consumido por la puerta de autorización; una falla de lookup se trata como
// denegación (domain.ErrActorUnavailable), nunca como caída del servicio.
type ActorRepository interface {
	GetByID(id string) (*entity.Actor, error)
}
