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

// LedgerUseCase es la única autoridad para mutar cantidades de inventario en
// respuesta al ciclo de vida de remesas (aplicar, editar, eliminar, aprobar).
//
// Toda operación corre dentro de una transacción del TxRunner: las filas de
// inventario se leen con bloqueo (SELECT FOR UPDATE), se validan TODAS las líneas
// y solo entonces se escribe. Si cualquier línea falla, nada se muta.
type LedgerUseCase struct {
	txRunner     TxRunner
	shipmentRepo repository.ShipmentRepository
	requestRepo  repository.ShipmentRequestRepository
}

// NewLedgerUseCase construye el caso de uso. shipmentRepo y requestRepo son los
// adaptadores atados al pool (lecturas fuera de transacción: listados, chequeo de duplicados).
func NewLedgerUseCase(
	txRunner TxRunner,
	shipmentRepo repository.ShipmentRepository,
	requestRepo repository.ShipmentRequestRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		shipmentRepo: shipmentRepo,
		requestRepo:  requestRepo,
	}
}

// Apply registra una remesa y ajusta el inventario atómicamente.
// Precondiciones por línea: el SKU debe existir (UnknownItemError) y, para salidas,
// la cantidad no puede superar el stock actual (StockError). Todo-o-nada.
func (uc *LedgerUseCase) Apply(ctx context.Context, actor Actor, companyID string, in ShipmentInput) (*entity.Shipment, error) {
	if !actor.CanApplyDirectly() {
		return nil, domain.ErrForbidden
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
	shipment := &entity.Shipment{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		ShipmentID:        strings.TrimSpace(in.ShipmentID),
		Type:              in.Type,
		Lines:             toEntityLines(in.Lines),
		Timestamp:         now,
		SubmittedByUserID: actor.UserID,
		SubmittedByEmail:  actor.Email,
		CreatedAt:         now,
	}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ShipmentRequestRepository,
	) error {
		skus, effect := shipmentEffect(shipment.Type, shipment.Lines)
		if err := applyDeltas(itemRepo, companyID, skus, effect); err != nil {
			return err
		}
		return shipmentRepo.Create(shipment)
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// Edit modifica una remesa aplicada calculando el delta NETO por SKU entre el efecto
// viejo y el nuevo, sobre la unión de ambos conjuntos de líneas. Un delta cero se
// omite (cero escrituras); un "revertir y reaplicar" ingenuo rechazaría ediciones
// válidas (ej. reducir la cantidad de una salida con stock ya bajo).
// Conserva timestamp e identidad del remitente originales.
func (uc *LedgerUseCase) Edit(ctx context.Context, actor Actor, companyID, id string, in ShipmentInput) (*entity.Shipment, error) {
	if !actor.CanApplyDirectly() {
		return nil, domain.ErrForbidden
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *entity.Shipment
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		shipmentRepo repository.ShipmentRepository,
		requestRepo repository.ShipmentRequestRepository,
	) error {
		original, err := shipmentRepo.GetByID(id)
		if err != nil {
			return err
		}
		if original == nil || original.CompanyID != companyID {
			return domain.ErrNotFound
		}

		// Advertencia de etiqueta duplicada solo si la etiqueta cambió.
		newLabel := strings.TrimSpace(in.ShipmentID)
		if !in.ConfirmDuplicate && !strings.EqualFold(newLabel, original.ShipmentID) {
			dup, err := existsInEither(shipmentRepo, requestRepo, companyID, newLabel)
			if err != nil {
				return err
			}
			if dup {
				return domain.ErrDuplicateShipmentID
			}
		}

		newLines := toEntityLines(in.Lines)
		skus, delta := netDelta(original.Type, original.Lines, in.Type, newLines)
		if err := applyDeltas(itemRepo, companyID, skus, delta); err != nil {
			return err
		}

		updated = &entity.Shipment{
			ID:                original.ID,
			CompanyID:         original.CompanyID,
			ShipmentID:        newLabel,
			Type:              in.Type,
			Lines:             newLines,
			Timestamp:         original.Timestamp,
			SubmittedByUserID: original.SubmittedByUserID,
			SubmittedByEmail:  original.SubmittedByEmail,
			ApprovedByEmail:   original.ApprovedByEmail,
			CreatedAt:         original.CreatedAt,
		}
		return shipmentRepo.Update(updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete revierte el efecto exacto de la remesa (inverso con signo de cada línea)
// y elimina el registro, en una sola transacción. Si operaciones intermedias ya
// consumieron el stock que la remesa había sumado, la reversión se rechaza con
// StockError en lugar de permitir cantidades negativas.
func (uc *LedgerUseCase) Delete(ctx context.Context, actor Actor, companyID, id string) error {
	if !actor.CanApplyDirectly() {
		return domain.ErrForbidden
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ShipmentRequestRepository,
	) error {
		shipment, err := shipmentRepo.GetByID(id)
		if err != nil {
			return err
		}
		if shipment == nil || shipment.CompanyID != companyID {
			return domain.ErrNotFound
		}
		skus, effect := shipmentEffect(shipment.Type, shipment.Lines)
		for _, sku := range skus {
			effect[sku] = -effect[sku]
		}
		if err := applyDeltas(itemRepo, companyID, skus, effect); err != nil {
			return err
		}
		return shipmentRepo.Delete(id)
	})
}

// CheckDuplicateID verifica (case-insensitive) si la etiqueta ya existe entre
// remesas aplicadas o solicitudes pendientes. Es advertencia, nunca bloqueo:
// el caller decide si procede con ConfirmDuplicate.
func (uc *LedgerUseCase) CheckDuplicateID(_ context.Context, companyID, shipmentID string) (bool, error) {
	return existsInEither(uc.shipmentRepo, uc.requestRepo, companyID, strings.TrimSpace(shipmentID))
}

// ── Helpers internos ──────────────────────────────────────────────────────────

func existsInEither(
	shipmentRepo repository.ShipmentRepository,
	requestRepo repository.ShipmentRequestRepository,
	companyID, shipmentID string,
) (bool, error) {
	dup, err := shipmentRepo.ExistsShipmentID(companyID, shipmentID)
	if err != nil || dup {
		return dup, err
	}
	return requestRepo.ExistsShipmentID(companyID, shipmentID)
}

// validateInput valida la entrada antes de tocar el almacén: etiqueta presente,
// tipo válido, al menos una línea, SKU no vacío y cantidad > 0 en cada línea.
func validateInput(in ShipmentInput) error {
	if strings.TrimSpace(in.ShipmentID) == "" {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.ShipmentIncoming && in.Type != entity.ShipmentOutgoing {
		return domain.ErrInvalidInput
	}
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if strings.TrimSpace(l.SKU) == "" || l.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toEntityLines(lines []LineInput) []entity.ShipmentLine {
	out := make([]entity.ShipmentLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.ShipmentLine{
			ItemSKU:     strings.TrimSpace(l.SKU),
			Description: l.Description,
			Quantity:    l.Quantity,
		})
	}
	return out
}

// shipmentEffect agrega las líneas por SKU y devuelve el efecto con signo sobre el
// inventario: +cantidad para incoming, -cantidad para outgoing. skus conserva el
// orden de primera aparición para escrituras deterministas.
func shipmentEffect(shipmentType string, lines []entity.ShipmentLine) (skus []string, effect map[string]int64) {
	effect = make(map[string]int64, len(lines))
	for _, l := range lines {
		if _, seen := effect[l.ItemSKU]; !seen {
			skus = append(skus, l.ItemSKU)
		}
		if shipmentType == entity.ShipmentIncoming {
			effect[l.ItemSKU] += l.Quantity
		} else {
			effect[l.ItemSKU] -= l.Quantity
		}
	}
	return skus, effect
}

// netDelta calcula delta(sku) = newEffect(sku) - oldEffect(sku) sobre la unión de
// SKUs de ambos conjuntos de líneas. Los SKUs con delta cero quedan en el mapa
// (applyDeltas los omite sin bloquear ni escribir la fila).
func netDelta(oldType string, oldLines []entity.ShipmentLine, newType string, newLines []entity.ShipmentLine) (skus []string, delta map[string]int64) {
	oldSKUs, oldEffect := shipmentEffect(oldType, oldLines)
	newSKUs, newEffect := shipmentEffect(newType, newLines)

	delta = make(map[string]int64, len(oldEffect)+len(newEffect))
	for _, sku := range oldSKUs {
		skus = append(skus, sku)
		delta[sku] = newEffect[sku] - oldEffect[sku]
	}
	for _, sku := range newSKUs {
		if _, seen := delta[sku]; !seen {
			skus = append(skus, sku)
			delta[sku] = newEffect[sku]
		}
	}
	return skus, delta
}

// applyDeltas aplica deltas con signo al inventario en dos fases dentro de la tx:
// primero bloquea (FOR UPDATE) y valida TODAS las filas afectadas, después escribe.
// Así una línea inválida a mitad de la remesa nunca deja mutaciones parciales.
func applyDeltas(itemRepo repository.ItemRepository, companyID string, skus []string, delta map[string]int64) error {
	newQty := make(map[string]int64, len(skus))
	for _, sku := range skus {
		d := delta[sku]
		if d == 0 {
			continue
		}
		item, err := itemRepo.GetBySKUForUpdate(companyID, sku)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.UnknownItemError{SKU: sku}
		}
		q := item.Quantity + d
		if q < 0 {
			return &domain.StockError{SKU: sku, Available: item.Quantity, Requested: -d}
		}
		newQty[sku] = q
	}
	for _, sku := range skus {
		if delta[sku] == 0 {
			continue
		}
		if err := itemRepo.UpdateQuantity(companyID, sku, newQty[sku]); err != nil {
			return err
		}
	}
	return nil
}
