package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Lecturas del ledger. Van contra los repos atados al pool: no necesitan
// transacción porque no mutan nada.

// ListShipments lista remesas aplicadas de la empresa. shipmentType vacío
// lista ambos tipos.
func (uc *LedgerUseCase) ListShipments(_ context.Context, companyID, shipmentType string, limit, offset int) ([]*entity.Shipment, error) {
	if shipmentType != "" && shipmentType != entity.ShipmentIncoming && shipmentType != entity.ShipmentOutgoing {
		return nil, domain.ErrInvalidInput
	}
	return uc.shipmentRepo.ListByCompany(companyID, shipmentType, limit, offset)
}

// GetShipment obtiene una remesa de la empresa.
func (uc *LedgerUseCase) GetShipment(_ context.Context, companyID, id string) (*entity.Shipment, error) {
	shipment, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shipment == nil || shipment.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return shipment, nil
}

// ListPendingRequests lista la cola de solicitudes pendientes de la empresa.
func (uc *LedgerUseCase) ListPendingRequests(_ context.Context, companyID string, limit, offset int) ([]*entity.ShipmentRequest, error) {
	return uc.requestRepo.ListPendingByCompany(companyID, limit, offset)
}
