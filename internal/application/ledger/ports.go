package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad todo-o-nada para el ledger de remesas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		shipmentRepo repository.ShipmentRepository,
		requestRepo repository.ShipmentRequestRepository,
	) error) error
}

// Actor es la identidad con la que se invoca una operación del ledger.
// El rol decide centralmente si la remesa se aplica directo o queda en solicitud.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

// CanApplyDirectly indica si el actor puede mutar inventario sin aprobación.
func (a Actor) CanApplyDirectly() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleEditor
}

// LineInput renglón de entrada para registrar o editar una remesa.
type LineInput struct {
	SKU         string
	Description string
	Quantity    int64
}

// ShipmentInput entrada para Apply/Edit/SubmitOrApply.
// ConfirmDuplicate: la detección de etiqueta repetida es solo advertencia; el caller
// la confirma explícitamente para proceder de todos modos.
type ShipmentInput struct {
	ShipmentID       string
	Type             string // incoming, outgoing
	Lines            []LineInput
	ConfirmDuplicate bool
}

// SubmitResult resultado de SubmitOrApply: exactamente uno de los dos campos es no-nil.
type SubmitResult struct {
	Shipment *entity.Shipment        // aplicado directo (admin/editor)
	Request  *entity.ShipmentRequest // quedó pendiente de aprobación (submitter)
}
