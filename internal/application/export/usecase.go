package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// maxExportRows tope de filas por exportación.
const maxExportRows = 10000

// InventoryPDFGenerator puerto hacia el generador de PDF.
type InventoryPDFGenerator interface {
	GenerateInventoryReport(companyName string, items []*entity.InventoryItem, generatedAt time.Time) ([]byte, error)
}

// ExportUseCase exportación del inventario a CSV y PDF.
type ExportUseCase struct {
	itemRepo    repository.ItemRepository
	companyRepo repository.CompanyRepository
	pdfGen      InventoryPDFGenerator
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(itemRepo repository.ItemRepository, companyRepo repository.CompanyRepository, pdfGen InventoryPDFGenerator) *ExportUseCase {
	return &ExportUseCase{itemRepo: itemRepo, companyRepo: companyRepo, pdfGen: pdfGen}
}

// csvHeader columnas del CSV, en el orden de la tabla del inventario.
var csvHeader = []string{"sku", "description", "category", "location", "quantity", "min_quantity", "unit_cost", "notes", "updated_at"}

// InventoryCSV exporta el catálogo completo de la empresa como CSV (UTF-8,
// con cabecera). Apto para abrir en hoja de cálculo.
func (uc *ExportUseCase) InventoryCSV(companyID string) ([]byte, error) {
	items, err := uc.itemRepo.ListByCompany(companyID, maxExportRows, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: escribir cabecera CSV: %w", err)
	}
	for _, it := range items {
		record := []string{
			it.SKU,
			it.Description,
			it.Category,
			it.Location,
			fmt.Sprintf("%d", it.Quantity),
			fmt.Sprintf("%d", it.MinQuantity),
			it.UnitCost.StringFixed(2),
			it.Notes,
			it.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: escribir fila CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: volcar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// InventoryPDF exporta el catálogo como informe PDF.
func (uc *ExportUseCase) InventoryPDF(companyID string) ([]byte, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	companyName := companyID
	if company != nil {
		companyName = company.Name
	}
	items, err := uc.itemRepo.ListByCompany(companyID, maxExportRows, 0)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateInventoryReport(companyName, items, time.Now())
}
