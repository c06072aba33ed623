package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo del catálogo.
// Quantity es el stock semilla; después solo se modifica vía remesas o edición admin.
type CreateItemRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Quantity    int64           `json:"quantity" validate:"min=0"`
	MinQuantity int64           `json:"min_quantity" validate:"min=0"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Notes       string          `json:"notes"`
}

// UpdateItemRequest edición directa de campos (corrección manual / recuento físico).
// Este camino NO pasa por el ledger: es un override administrativo deliberado.
type UpdateItemRequest struct {
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Location    *string          `json:"location"`
	Quantity    *int64           `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity *int64           `json:"min_quantity" validate:"omitempty,min=0"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	Notes       *string          `json:"notes"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Quantity    int64           `json:"quantity"`
	MinQuantity int64           `json:"min_quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
