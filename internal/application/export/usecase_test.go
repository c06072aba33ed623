package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type stubItemRepo struct {
	items []*entity.InventoryItem
}

func (r *stubItemRepo) Create(*entity.InventoryItem) error            { return nil }
func (r *stubItemRepo) GetByID(string) (*entity.InventoryItem, error) { return nil, nil }
func (r *stubItemRepo) GetByCompanyAndSKU(string, string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *stubItemRepo) GetBySKUForUpdate(string, string) (*entity.InventoryItem, error) {
	return nil, nil
}
func (r *stubItemRepo) Update(*entity.InventoryItem) error         { return nil }
func (r *stubItemRepo) UpdateQuantity(string, string, int64) error { return nil }
func (r *stubItemRepo) ListByCompany(string, int, int) ([]*entity.InventoryItem, error) {
	return r.items, nil
}
func (r *stubItemRepo) Search(string, string, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *stubItemRepo) ListLowStock(string) ([]*entity.InventoryItem, error) { return nil, nil }
func (r *stubItemRepo) Delete(string) error                                  { return nil }

type stubCompanyRepo struct{}

func (stubCompanyRepo) Create(*entity.Company) error { return nil }
func (stubCompanyRepo) GetByID(string) (*entity.Company, error) {
	return &entity.Company{ID: "company-1", Name: "Ferretería Central"}, nil
}
func (stubCompanyRepo) List(int, int) ([]*entity.Company, error) { return nil, nil }

type stubPDFGen struct {
	gotCompany string
	gotRows    int
}

func (g *stubPDFGen) GenerateInventoryReport(companyName string, items []*entity.InventoryItem, _ time.Time) ([]byte, error) {
	g.gotCompany = companyName
	g.gotRows = len(items)
	return []byte("%PDF-1.7 stub"), nil
}

func sampleItems() []*entity.InventoryItem {
	return []*entity.InventoryItem{
		{
			SKU:         "TOR-M6",
			Description: "Tornillo, hexagonal \"M6\"",
			Category:    "Ferretería",
			Location:    "A-1",
			Quantity:    240,
			MinQuantity: 50,
			UnitCost:    decimal.RequireFromString("0.15"),
			UpdatedAt:   time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			SKU:         "CBL-UTP5",
			Description: "Cable UTP categoría 5",
			Quantity:    12,
			MinQuantity: 20,
			UnitCost:    decimal.RequireFromString("35.9"),
			UpdatedAt:   time.Date(2026, 3, 6, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestInventoryCSV_CabeceraYFilas(t *testing.T) {
	uc := NewExportUseCase(&stubItemRepo{items: sampleItems()}, stubCompanyRepo{}, &stubPDFGen{})

	raw, err := uc.InventoryCSV("company-1")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "TOR-M6", records[1][0])
	// Comas y comillas en la descripción sobreviven el round-trip CSV.
	assert.Equal(t, `Tornillo, hexagonal "M6"`, records[1][1])
	assert.Equal(t, "240", records[1][4])
	assert.Equal(t, "0.15", records[1][6])
	assert.Equal(t, "35.90", records[2][6])
}

func TestInventoryCSV_CatalogoVacio(t *testing.T) {
	uc := NewExportUseCase(&stubItemRepo{}, stubCompanyRepo{}, &stubPDFGen{})

	raw, err := uc.InventoryCSV("company-1")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // solo cabecera
}

func TestInventoryPDF_UsaNombreDeEmpresa(t *testing.T) {
	gen := &stubPDFGen{}
	uc := NewExportUseCase(&stubItemRepo{items: sampleItems()}, stubCompanyRepo{}, gen)

	raw, err := uc.InventoryPDF("company-1")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, "Ferretería Central", gen.gotCompany)
	assert.Equal(t, 2, gen.gotRows)
}
