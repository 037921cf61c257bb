package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// UnitRepository puerto de persistencia para unidades de negocio.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	List(limit, offset int) ([]*entity.Unit, error)
}
