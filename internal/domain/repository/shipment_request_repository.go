package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ShipmentRequestRepository define el puerto de persistencia para solicitudes
// de remesa pendientes de aprobación.
type ShipmentRequestRepository interface {
	Create(request *entity.ShipmentRequest) error
	GetByID(id string) (*entity.ShipmentRequest, error)
	ListPendingByCompany(companyID string, limit, offset int) ([]*entity.ShipmentRequest, error)
	Delete(id string) error
	// ExistsShipmentID verifica (case-insensitive) etiquetas entre solicitudes pendientes.
	ExistsShipmentID(companyID, shipmentID string) (bool, error)
}
