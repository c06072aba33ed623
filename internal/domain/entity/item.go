package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo del catálogo con su stock actual.
// Quantity solo se modifica vía el ledger de remesas o por edición administrativa
// directa (recuento físico); el invariante Quantity >= 0 debe sostenerse siempre.
type InventoryItem struct {
	ID          string
	CompanyID   string
	SKU         string // único por empresa
	Description string
	Category    string
	Location    string
	Quantity    int64
	MinQuantity int64           // umbral de stock bajo
	UnitCost    decimal.Decimal // costo unitario de referencia
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
