package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// SubmitOrApply es el punto de entrada central con chequeo de capacidad:
// admin/editor aplican la remesa directo al inventario; submitter crea una
// solicitud pendiente que no muta inventario hasta ser aprobada.
func (uc *LedgerUseCase) SubmitOrApply(ctx context.Context, actor Actor, companyID string, in ShipmentInput) (*SubmitResult, error) {
	if actor.CanApplyDirectly() {
		shipment, err := uc.Apply(ctx, actor, companyID, in)
		if err != nil {
			return nil, err
		}
		return &SubmitResult{Shipment: shipment}, nil
	}

	if err := validateInput(in); err != nil {
		return nil, err
	}
	if !in.ConfirmDuplicate {
		dup, err := uc.CheckDuplicateID(ctx, companyID, in.ShipmentID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, domain.ErrDuplicateShipmentID
		}
	}

	now := time.Now()
	request := &entity.ShipmentRequest{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		ShipmentID:        strings.TrimSpace(in.ShipmentID),
		Type:              in.Type,
		Lines:             toEntityLines(in.Lines),
		Status:            entity.RequestPending,
		Timestamp:         now,
		SubmittedByUserID: actor.UserID,
		SubmittedByEmail:  actor.Email,
		CreatedAt:         now,
	}
	if err := uc.requestRepo.Create(request); err != nil {
		return nil, err
	}
	return &SubmitResult{Request: request}, nil
}

// Approve aplica la solicitud con las líneas/tipo/remitente originales, marca quién
// aprobó y elimina la solicitud — todo en una unidad atómica. Si la aplicación
// falla (SKU desconocido, stock insuficiente), la solicitud queda intacta.
func (uc *LedgerUseCase) Approve(ctx context.Context, approver Actor, companyID, requestID string) (*entity.Shipment, error) {
	if !approver.CanApplyDirectly() {
		return nil, domain.ErrForbidden
	}

	var shipment *entity.Shipment
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		shipmentRepo repository.ShipmentRepository,
		requestRepo repository.ShipmentRequestRepository,
	) error {
		request, err := requestRepo.GetByID(requestID)
		if err != nil {
			return err
		}
		if request == nil || request.CompanyID != companyID || request.Status != entity.RequestPending {
			return domain.ErrNotFound
		}

		skus, effect := shipmentEffect(request.Type, request.Lines)
		if err := applyDeltas(itemRepo, companyID, skus, effect); err != nil {
			return err
		}

		shipment = &entity.Shipment{
			ID:                uuid.New().String(),
			CompanyID:         request.CompanyID,
			ShipmentID:        request.ShipmentID,
			Type:              request.Type,
			Lines:             request.Lines,
			Timestamp:         request.Timestamp,
			SubmittedByUserID: request.SubmittedByUserID,
			SubmittedByEmail:  request.SubmittedByEmail,
			ApprovedByEmail:   approver.Email,
			CreatedAt:         time.Now(),
		}
		if err := shipmentRepo.Create(shipment); err != nil {
			return err
		}
		return requestRepo.Delete(request.ID)
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// Reject elimina la solicitud sin efecto alguno sobre el inventario.
func (uc *LedgerUseCase) Reject(_ context.Context, actor Actor, companyID, requestID string) error {
	if !actor.CanApplyDirectly() {
		return domain.ErrForbidden
	}
	request, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if request == nil || request.CompanyID != companyID || request.Status != entity.RequestPending {
		return domain.ErrNotFound
	}
	return uc.requestRepo.Delete(requestID)
}
