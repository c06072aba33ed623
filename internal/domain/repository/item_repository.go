package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// GetBySKUForUpdate se usa dentro de transacciones del ledger para bloquear la
// fila (SELECT FOR UPDATE) y garantizar lectura-validación-escritura atómica.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.InventoryItem, error)
	GetBySKUForUpdate(companyID, sku string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	UpdateQuantity(companyID, sku string, quantity int64) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error)
	Search(companyID, query string, limit, offset int) ([]*entity.InventoryItem, error)
	ListLowStock(companyID string) ([]*entity.InventoryItem, error)
	Delete(id string) error
}
