package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ItemUseCase CRUD y consultas del catálogo. La cantidad solo entra aquí como
// semilla (creación) o como override administrativo (Update tras recuento físico);
// el flujo normal de movimiento pasa por el ledger de remesas.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un artículo con su stock semilla. SKU único por empresa.
func (uc *ItemUseCase) Create(companyID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndSKU(companyID, sku)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         sku,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		UnitCost:    in.UnitCost,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo de la empresa.
func (uc *ItemUseCase) GetByID(companyID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista el catálogo; con query hace búsqueda por subcadena sobre
// SKU/descripción/categoría/ubicación.
func (uc *ItemUseCase) List(companyID, query string, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	var (
		items []*entity.InventoryItem
		err   error
	)
	if strings.TrimSpace(query) != "" {
		items, err = uc.repo.Search(companyID, strings.TrimSpace(query), page.Limit, page.Offset)
	} else {
		items, err = uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, it := range items {
		out.Items = append(out.Items, *toItemResponse(it))
	}
	return out, nil
}

// Update edición administrativa directa de campos, incluida la cantidad
// (recuento físico). Deliberadamente exenta del invariante de conservación del
// ledger; la no-negatividad sí se mantiene.
func (uc *ItemUseCase) Update(companyID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinQuantity = *in.MinQuantity
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListLowStock artículos con cantidad en o bajo su umbral mínimo.
func (uc *ItemUseCase) ListLowStock(companyID string) ([]dto.ItemResponse, error) {
	items, err := uc.repo.ListLowStock(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          it.ID,
		CompanyID:   it.CompanyID,
		SKU:         it.SKU,
		Description: it.Description,
		Category:    it.Category,
		Location:    it.Location,
		Quantity:    it.Quantity,
		MinQuantity: it.MinQuantity,
		UnitCost:    it.UnitCost,
		Notes:       it.Notes,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}
