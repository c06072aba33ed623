package dto

// ScanRequest body para POST /api/scan: imagen del documento en base64.
type ScanRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	MimeType    string `json:"mime_type"` // default image/jpeg
}

// ScanCandidateDTO renglón candidato derivado del texto OCR, emparejado
// difusamente contra el catálogo. MatchedSKU vacío = sin coincidencia confiable.
type ScanCandidateDTO struct {
	RawText     string  `json:"raw_text"`
	SKUGuess    string  `json:"sku_guess,omitempty"`
	MatchedSKU  string  `json:"matched_sku,omitempty"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Confidence  float64 `json:"confidence"`
}

// ScanResultDTO resultado del escaneo: etiqueta sugerida + renglones candidatos.
// Son solo sugerencias de mejor esfuerzo; el usuario las revisa antes de registrar
// la remesa por el flujo normal.
type ScanResultDTO struct {
	ShipmentIDGuess string             `json:"shipment_id_guess,omitempty"`
	Candidates      []ScanCandidateDTO `json:"candidates"`
}
