package dto

import "time"

// ShipmentLineDTO renglón de remesa en requests y responses.
type ShipmentLineDTO struct {
	ItemSKU     string `json:"item_sku" validate:"required"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
}

// LogShipmentRequest body para POST /api/shipments y PUT /api/shipments/:id.
// ConfirmDuplicate: la etiqueta repetida es advertencia, no bloqueo; el cliente
// reintenta con true tras confirmar con el usuario.
type LogShipmentRequest struct {
	ShipmentID       string            `json:"shipment_id" validate:"required"`
	Type             string            `json:"type" validate:"required,oneof=incoming outgoing"`
	Lines            []ShipmentLineDTO `json:"lines" validate:"required,min=1,dive"`
	ConfirmDuplicate bool              `json:"confirm_duplicate"`
}

// ShipmentResponse salida de una remesa aplicada.
type ShipmentResponse struct {
	ID                string            `json:"id"`
	ShipmentID        string            `json:"shipment_id"`
	Type              string            `json:"type"`
	Lines             []ShipmentLineDTO `json:"lines"`
	Timestamp         time.Time         `json:"timestamp"`
	SubmittedByUserID string            `json:"submitted_by_user_id"`
	SubmittedByEmail  string            `json:"submitted_by_email"`
	ApprovedByEmail   string            `json:"approved_by_email,omitempty"`
}

// ShipmentRequestResponse salida de una solicitud pendiente.
type ShipmentRequestResponse struct {
	ID               string            `json:"id"`
	ShipmentID       string            `json:"shipment_id"`
	Type             string            `json:"type"`
	Lines            []ShipmentLineDTO `json:"lines"`
	Status           string            `json:"status"`
	Timestamp        time.Time         `json:"timestamp"`
	SubmittedByEmail string            `json:"submitted_by_email"`
}

// ShipmentListResponse lista paginada de remesas.
type ShipmentListResponse struct {
	Items []ShipmentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// DuplicateCheckResponse respuesta del chequeo advisory de etiqueta.
type DuplicateCheckResponse struct {
	ShipmentID string `json:"shipment_id"`
	Duplicate  bool   `json:"duplicate"`
}
