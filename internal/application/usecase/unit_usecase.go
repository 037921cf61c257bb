package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// UnitUseCase altas y consultas de unidades de negocio.
type UnitUseCase struct {
	repo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(repo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{repo: repo}
}

// Create crea una nueva unidad.
func (uc *UnitUseCase) Create(in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	now := time.Now()
	unit := &entity.Unit{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	resp := toUnitResponse(unit)
	return &resp, nil
}

// GetByID obtiene una unidad por ID.
func (uc *UnitUseCase) GetByID(id string) (*dto.UnitResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	resp := toUnitResponse(unit)
	return &resp, nil
}

// List lista unidades con paginación.
func (uc *UnitUseCase) List(limit, offset int) (*dto.UnitListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	units := make([]dto.UnitResponse, 0, len(list))
	for _, unit := range list {
		units = append(units, toUnitResponse(unit))
	}
	return &dto.UnitListResponse{
		Units: units,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(units)},
	}, nil
}

func toUnitResponse(unit *entity.Unit) dto.UnitResponse {
	return dto.UnitResponse{
		ID:        unit.ID,
		Name:      unit.Name,
		Address:   unit.Address,
		CreatedAt: unit.CreatedAt,
		UpdatedAt: unit.UpdatedAt,
	}
}
