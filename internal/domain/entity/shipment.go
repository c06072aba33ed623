package entity

import "time"

// Tipos de remesa.
const (
	ShipmentIncoming = "incoming" // entrada de mercancía
	ShipmentOutgoing = "outgoing" // salida de mercancía
)

// Estados de una solicitud de remesa.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// ShipmentLine es un renglón de remesa: SKU referenciado, copia informativa de la
// descripción y cantidad (> 0 siempre; el signo lo determina el tipo de la remesa).
type ShipmentLine struct {
	ItemSKU     string `json:"item_sku"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
}

// Shipment representa una remesa aplicada (su efecto ya está en el inventario).
// ShipmentID es la etiqueta humana; puede repetirse (los duplicados son advertencia,
// no restricción de unicidad).
type Shipment struct {
	ID                string
	CompanyID         string
	ShipmentID        string
	Type              string // incoming, outgoing
	Lines             []ShipmentLine
	Timestamp         time.Time
	SubmittedByUserID string
	SubmittedByEmail  string
	ApprovedByEmail   string // vacío si fue registro directo
	CreatedAt         time.Time
}

// ShipmentRequest es una remesa pendiente de aprobación: nunca toca el inventario
// por sí misma, solo la aprobación (que la convierte en Shipment) lo hace.
type ShipmentRequest struct {
	ID                string
	CompanyID         string
	ShipmentID        string
	Type              string
	Lines             []ShipmentLine
	Status            string // pending, approved, rejected
	Timestamp         time.Time
	SubmittedByUserID string
	SubmittedByEmail  string
	CreatedAt         time.Time
}
