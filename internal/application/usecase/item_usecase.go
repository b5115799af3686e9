package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gruasdelsur/backoffice-api/internal/application/dto"
	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
	"github.com/gruasdelsur/backoffice-api/pkg/textutil"
)

// searchScanLimit tope de filas revisadas al filtrar una búsqueda en memoria.
const searchScanLimit = 500

// ItemUseCase casos de uso CRUD para ítems de inventario.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem; el SKU es único por empresa (lo impone el store).
func (uc *ItemUseCase) Create(ctx context.Context, companyID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Unit:        in.Unit,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza los campos presentes de un ítem.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista ítems por empresa con paginación.
func (uc *ItemUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toItemList(list, limit, offset), nil
}

// Search busca ítems por nombre o SKU, insensible a tildes y mayúsculas
// ("bateria" encuentra "Batería 12V"). El filtro corre en memoria sobre el
// catálogo de la empresa, acotado a searchScanLimit filas.
func (uc *ItemUseCase) Search(ctx context.Context, companyID, query string, limit int) (*dto.ItemListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	all, err := uc.repo.ListByCompany(ctx, companyID, searchScanLimit, 0)
	if err != nil {
		return nil, err
	}
	matched := make([]*entity.Item, 0, limit)
	for _, item := range all {
		if textutil.ContainsFold(item.Name, query) || textutil.ContainsFold(item.SKU, query) {
			matched = append(matched, item)
			if len(matched) >= limit {
				break
			}
		}
	}
	return toItemList(matched, limit, 0), nil
}

func toItemList(list []*entity.Item, limit, offset int) *dto.ItemListResponse {
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          i.ID,
		CompanyID:   i.CompanyID,
		SKU:         i.SKU,
		Name:        i.Name,
		Description: i.Description,
		Unit:        i.Unit,
		MinStock:    i.MinStock,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
