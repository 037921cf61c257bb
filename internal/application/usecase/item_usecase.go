package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ItemUseCase altas y consultas de ítems. CurrentStock inicia en 0 y SOLO se
// mueve vía el kardex; aquí no hay escritura de saldo.
type ItemUseCase struct {
	repo  repository.ItemRepository
	units repository.UnitRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, units repository.UnitRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, units: units}
}

// Create crea un ítem con stock 0 en la unidad indicada.
func (uc *ItemUseCase) Create(unitID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	unit, err := uc.units.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		UnitID:       unitID,
		Name:         in.Name,
		CurrentStock: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// List lista ítems de una unidad con paginación.
func (uc *ItemUseCase) List(unitID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListByUnit(unitID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, item := range list {
		items = append(items, toItemResponse(item))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

func toItemResponse(item *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:           item.ID,
		UnitID:       item.UnitID,
		Name:         item.Name,
		CurrentStock: item.CurrentStock,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
