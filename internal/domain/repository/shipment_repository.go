package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ShipmentRepository define el puerto de persistencia para remesas aplicadas.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	Update(shipment *entity.Shipment) error
	Delete(id string) error
	ListByCompany(companyID, shipmentType string, limit, offset int) ([]*entity.Shipment, error)
	// ExistsShipmentID verifica (case-insensitive) si la etiqueta ya fue usada.
	ExistsShipmentID(companyID, shipmentID string) (bool, error)
}
