package scan

import (
	"context"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// maxCatalogForMatching tope de artículos cargados para el matching difuso.
const maxCatalogForMatching = 2000

// ScanUseCase escanea una imagen de documento (guía, albarán) y propone
// renglones de remesa. El resultado son sugerencias: el registro real pasa
// después por el flujo normal de remesas, con su validación completa.
type ScanUseCase struct {
	extractor TextExtractor
	itemRepo  repository.ItemRepository
}

// NewScanUseCase construye el caso de uso de escaneo.
func NewScanUseCase(extractor TextExtractor, itemRepo repository.ItemRepository) *ScanUseCase {
	return &ScanUseCase{extractor: extractor, itemRepo: itemRepo}
}

// Scan extrae texto de la imagen y lo convierte en candidatos emparejados
// contra el catálogo de la empresa.
func (uc *ScanUseCase) Scan(ctx context.Context, companyID string, in dto.ScanRequest) (*dto.ScanResultDTO, error) {
	if strings.TrimSpace(in.ImageBase64) == "" {
		return nil, domain.ErrInvalidInput
	}
	mime := in.MimeType
	if mime == "" {
		mime = "image/jpeg"
	}

	text, err := uc.extractor.ExtractText(ctx, in.ImageBase64, mime)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListByCompany(companyID, maxCatalogForMatching, 0)
	if err != nil {
		return nil, err
	}
	catalog := make([]catalogEntry, 0, len(items))
	for _, it := range items {
		catalog = append(catalog, catalogEntry{SKU: it.SKU, Description: it.Description})
	}

	result := &dto.ScanResultDTO{
		ShipmentIDGuess: parseShipmentID(text),
		Candidates:      []dto.ScanCandidateDTO{},
	}
	for _, line := range parseLines(text) {
		cand := dto.ScanCandidateDTO{
			RawText:     line.RawText,
			SKUGuess:    line.SKUGuess,
			Description: line.Text,
			Quantity:    line.Quantity,
		}
		if m := matchLine(line, catalog); m != nil {
			cand.MatchedSKU = m.SKU
			cand.Description = m.Description
			cand.Confidence = m.Confidence
		}
		result.Candidates = append(result.Candidates, cand)
	}
	return result, nil
}
