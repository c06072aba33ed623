package ledger_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (mismos puertos que los adaptadores PostgreSQL)
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem // key: companyID|sku

	quantityWrites int // llamadas a UpdateQuantity, para asertar "cero escrituras"
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func itemKey(companyID, sku string) string { return companyID + "|" + sku }

func (f *fakeItemRepo) seed(companyID, sku string, qty int64) {
	f.items[itemKey(companyID, sku)] = &entity.InventoryItem{
		ID:        sku,
		CompanyID: companyID,
		SKU:       sku,
		Quantity:  qty,
	}
}

func (f *fakeItemRepo) qty(companyID, sku string) int64 {
	return f.items[itemKey(companyID, sku)].Quantity
}

func (f *fakeItemRepo) Create(item *entity.InventoryItem) error {
	f.items[itemKey(item.CompanyID, item.SKU)] = item
	return nil
}

func (f *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.InventoryItem, error) {
	return f.items[itemKey(companyID, sku)], nil
}

func (f *fakeItemRepo) GetBySKUForUpdate(companyID, sku string) (*entity.InventoryItem, error) {
	it, ok := f.items[itemKey(companyID, sku)]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) Update(item *entity.InventoryItem) error {
	f.items[itemKey(item.CompanyID, item.SKU)] = item
	return nil
}

func (f *fakeItemRepo) UpdateQuantity(companyID, sku string, quantity int64) error {
	f.quantityWrites++
	it, ok := f.items[itemKey(companyID, sku)]
	if !ok {
		return fmt.Errorf("update quantity: sku %s no existe", sku)
	}
	it.Quantity = quantity
	return nil
}

func (f *fakeItemRepo) ListByCompany(string, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeItemRepo) Search(string, string, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeItemRepo) ListLowStock(string) ([]*entity.InventoryItem, error) { return nil, nil }
func (f *fakeItemRepo) Delete(string) error                                  { return nil }

type fakeShipmentRepo struct {
	shipments map[string]*entity.Shipment
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: make(map[string]*entity.Shipment)}
}

func (f *fakeShipmentRepo) Create(s *entity.Shipment) error {
	f.shipments[s.ID] = s
	return nil
}

func (f *fakeShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	return f.shipments[id], nil
}

func (f *fakeShipmentRepo) Update(s *entity.Shipment) error {
	f.shipments[s.ID] = s
	return nil
}

func (f *fakeShipmentRepo) Delete(id string) error {
	delete(f.shipments, id)
	return nil
}

func (f *fakeShipmentRepo) ListByCompany(string, string, int, int) ([]*entity.Shipment, error) {
	return nil, nil
}

func (f *fakeShipmentRepo) ExistsShipmentID(companyID, shipmentID string) (bool, error) {
	for _, s := range f.shipments {
		if s.CompanyID == companyID && strings.EqualFold(s.ShipmentID, shipmentID) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequestRepo struct {
	requests map[string]*entity.ShipmentRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*entity.ShipmentRequest)}
}

func (f *fakeRequestRepo) Create(r *entity.ShipmentRequest) error {
	f.requests[r.ID] = r
	return nil
}

func (f *fakeRequestRepo) GetByID(id string) (*entity.ShipmentRequest, error) {
	return f.requests[id], nil
}

func (f *fakeRequestRepo) ListPendingByCompany(string, int, int) ([]*entity.ShipmentRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) Delete(id string) error {
	delete(f.requests, id)
	return nil
}

func (f *fakeRequestRepo) ExistsShipmentID(companyID, shipmentID string) (bool, error) {
	for _, r := range f.requests {
		if r.CompanyID == companyID && r.Status == entity.RequestPending && strings.EqualFold(r.ShipmentID, shipmentID) {
			return true, nil
		}
	}
	return false, nil
}

// fakeTxRunner ejecuta el callback directo con los fakes. failWith simula un
// fallo de commit (conflicto/conectividad) del runner real.
type fakeTxRunner struct {
	items     *fakeItemRepo
	shipments *fakeShipmentRepo
	requests  *fakeRequestRepo
	failWith  error
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	shipmentRepo repository.ShipmentRepository,
	requestRepo repository.ShipmentRequestRepository,
) error) error {
	if f.failWith != nil {
		return f.failWith
	}
	return fn(f.items, f.shipments, f.requests)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testCompany = "company-1"

var (
	admin     = ledger.Actor{UserID: "u-admin", Email: "admin@acme.co", Role: entity.RoleAdmin}
	editor    = ledger.Actor{UserID: "u-editor", Email: "editor@acme.co", Role: entity.RoleEditor}
	submitter = ledger.Actor{UserID: "u-sub", Email: "sub@acme.co", Role: entity.RoleSubmitter}
)

type fixture struct {
	items     *fakeItemRepo
	shipments *fakeShipmentRepo
	requests  *fakeRequestRepo
	runner    *fakeTxRunner
	uc        *ledger.LedgerUseCase
}

func newFixture() *fixture {
	items := newFakeItemRepo()
	shipments := newFakeShipmentRepo()
	requests := newFakeRequestRepo()
	runner := &fakeTxRunner{items: items, shipments: shipments, requests: requests}
	return &fixture{
		items:     items,
		shipments: shipments,
		requests:  requests,
		runner:    runner,
		uc:        ledger.NewLedgerUseCase(runner, shipments, requests),
	}
}

func lines(pairs ...any) []ledger.LineInput {
	var out []ledger.LineInput
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, ledger.LineInput{
			SKU:      pairs[i].(string),
			Quantity: int64(pairs[i+1].(int)),
		})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaSumaStock(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	s, err := fx.uc.Apply(context.Background(), admin, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 5),
	})
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.EqualValues(t, 15, fx.items.qty(testCompany, "A1"))
	assert.Len(t, fx.shipments.shipments, 1, "la remesa debe quedar persistida")
	assert.Equal(t, admin.Email, s.SubmittedByEmail)
}

// Escenario concreto de salida: A1=10, salida de 4 → 6; salida de 10 → rechazo
// con los valores exactos disponibles/solicitados y el stock queda en 6.
func TestApply_SalidaInsuficienteNoMuta(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	_, err := fx.uc.Apply(context.Background(), editor, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentOutgoing,
		Lines:      lines("A1", 4),
	})
	require.NoError(t, err)
	require.EqualValues(t, 6, fx.items.qty(testCompany, "A1"))

	_, err = fx.uc.Apply(context.Background(), editor, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-002",
		Type:       entity.ShipmentOutgoing,
		Lines:      lines("A1", 10),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "A1", stockErr.SKU)
	assert.EqualValues(t, 6, stockErr.Available)
	assert.EqualValues(t, 10, stockErr.Requested)

	assert.EqualValues(t, 6, fx.items.qty(testCompany, "A1"), "el stock no debe cambiar tras un rechazo")
	assert.Len(t, fx.shipments.shipments, 1, "la remesa rechazada no debe persistirse")
}

// Todo-o-nada: si la línea k falla, las líneas 1..k-1 no deben haber mutado nada.
func TestApply_SKUDesconocidoNoMutaNada(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	_, err := fx.uc.Apply(context.Background(), admin, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 5, "NO-EXISTE", 2),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownItem)

	var unknownErr *domain.UnknownItemError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "NO-EXISTE", unknownErr.SKU)

	assert.EqualValues(t, 10, fx.items.qty(testCompany, "A1"))
	assert.Zero(t, fx.items.quantityWrites, "ninguna línea debe escribirse si otra falla")
	assert.Empty(t, fx.shipments.shipments)
}

func TestApply_ValidacionAntesDelAlmacen(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	casos := []ledger.ShipmentInput{
		{ShipmentID: "", Type: entity.ShipmentIncoming, Lines: lines("A1", 1)},
		{ShipmentID: "REM-001", Type: "sideways", Lines: lines("A1", 1)},
		{ShipmentID: "REM-001", Type: entity.ShipmentIncoming},
		{ShipmentID: "REM-001", Type: entity.ShipmentIncoming, Lines: []ledger.LineInput{{SKU: "A1", Quantity: 0}}},
		{ShipmentID: "REM-001", Type: entity.ShipmentIncoming, Lines: []ledger.LineInput{{SKU: "A1", Quantity: -3}}},
		{ShipmentID: "REM-001", Type: entity.ShipmentIncoming, Lines: []ledger.LineInput{{SKU: "  ", Quantity: 1}}},
	}
	for _, in := range casos {
		_, err := fx.uc.Apply(context.Background(), admin, testCompany, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.EqualValues(t, 10, fx.items.qty(testCompany, "A1"))
	assert.Zero(t, fx.items.quantityWrites)
}

func TestApply_RolSubmitterProhibido(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	_, err := fx.uc.Apply(context.Background(), submitter, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestApply_EtiquetaDuplicadaEsAdvertencia(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	_, err := fx.uc.Apply(context.Background(), admin, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 1),
	})
	require.NoError(t, err)

	// Misma etiqueta con otra capitalización → advertencia, nada se muta.
	_, err = fx.uc.Apply(context.Background(), admin, testCompany, ledger.ShipmentInput{
		ShipmentID: "rem-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 2),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateShipmentID)
	assert.EqualValues(t, 11, fx.items.qty(testCompany, "A1"))

	// Con confirmación explícita procede: nunca es restricción de unicidad.
	_, err = fx.uc.Apply(context.Background(), admin, testCompany, ledger.ShipmentInput{
		ShipmentID:       "rem-001",
		Type:             entity.ShipmentIncoming,
		Lines:            lines("A1", 2),
		ConfirmDuplicate: true,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 13, fx.items.qty(testCompany, "A1"))
}

// La advertencia también cubre solicitudes pendientes, no solo remesas aplicadas.
func TestCheckDuplicateID_IncluyeSolicitudesPendientes(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	_, err := fx.uc.SubmitOrApply(context.Background(), submitter, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-777",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 1),
	})
	require.NoError(t, err)

	dup, err := fx.uc.CheckDuplicateID(context.Background(), testCompany, "rem-777")
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = fx.uc.CheckDuplicateID(context.Background(), testCompany, "REM-778")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestApply_FalloDeTransaccion(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	fx.runner.failWith = fmt.Errorf("%w: conflicto de serialización", domain.ErrTransactionFailed)

	_, err := fx.uc.Apply(context.Background(), admin, testCompany, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 1),
	})
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.EqualValues(t, 10, fx.items.qty(testCompany, "A1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Edit — delta neto por SKU
// ──────────────────────────────────────────────────────────────────────────────

func applied(t *testing.T, fx *fixture, actor ledger.Actor, label, typ string, ls []ledger.LineInput) *entity.Shipment {
	t.Helper()
	s, err := fx.uc.Apply(context.Background(), actor, testCompany, ledger.ShipmentInput{
		ShipmentID: label, Type: typ, Lines: ls,
	})
	require.NoError(t, err)
	return s
}

// Escenario concreto: entrada {A1:5} aplicada con A1 10→15; editar a {A1:2}.
// Delta neto = (+2) - (+5) = -3 → A1 = 12, en una sola escritura.
func TestEdit_ReduccionDeEntradaAplicaDeltaNeto(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	s := applied(t, fx, admin, "REM-001", entity.ShipmentIncoming, lines("A1", 5))
	require.EqualValues(t, 15, fx.items.qty(testCompany, "A1"))
	writesBefore := fx.items.quantityWrites

	_, err := fx.uc.Edit(context.Background(), admin, testCompany, s.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 2),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 12, fx.items.qty(testCompany, "A1"))
	assert.Equal(t, writesBefore+1, fx.items.quantityWrites, "un solo SKU afectado → una sola escritura")
}

// Cambio de tipo: salida {A1:3} (10→7) editada a entrada {A1:3}.
// oldEffect=-3, newEffect=+3, delta=+6 → A1 = 13.
func TestEdit_CambioDeTipoInvierteEfecto(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	s := applied(t, fx, admin, "REM-001", entity.ShipmentOutgoing, lines("A1", 3))
	require.EqualValues(t, 7, fx.items.qty(testCompany, "A1"))

	updated, err := fx.uc.Edit(context.Background(), admin, testCompany, s.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 3),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 13, fx.items.qty(testCompany, "A1"))
	assert.Equal(t, entity.ShipmentIncoming, updated.Type)
	assert.Equal(t, s.Timestamp, updated.Timestamp, "el timestamp original se conserva")
	assert.Equal(t, s.SubmittedByEmail, updated.SubmittedByEmail)
}

// Idempotencia de edición sin cambios: delta cero en todos los SKUs → cero
// escrituras de cantidad.
func TestEdit_SinCambiosCeroEscrituras(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	fx.items.seed(testCompany, "B2", 4)
	s := applied(t, fx, admin, "REM-001", entity.ShipmentIncoming, lines("A1", 5, "B2", 2))
	writesBefore := fx.items.quantityWrites

	_, err := fx.uc.Edit(context.Background(), admin, testCompany, s.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 5, "B2", 2),
	})
	require.NoError(t, err)

	assert.Equal(t, writesBefore, fx.items.quantityWrites)
	assert.EqualValues(t, 15, fx.items.qty(testCompany, "A1"))
	assert.EqualValues(t, 6, fx.items.qty(testCompany, "B2"))
}

// El delta neto evita rechazos espurios: una salida {A:5} con stock ya en 0 puede
// reducirse a {A:3} (delta +2) aunque "revertir y reaplicar" fallaría al reaplicar.
func TestEdit_ReduccionDeSalidaConStockAgotado(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 5)
	s := applied(t, fx, admin, "REM-001", entity.ShipmentOutgoing, lines("A1", 5))
	require.EqualValues(t, 0, fx.items.qty(testCompany, "A1"))

	_, err := fx.uc.Edit(context.Background(), admin, testCompany, s.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentOutgoing,
		Lines:      lines("A1", 3),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, fx.items.qty(testCompany, "A1"))
}

// Si algún delta de la edición dejaría stock negativo, ningún SKU se escribe.
func TestEdit_DeltaInsuficienteNoMutaNada(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	fx.items.seed(testCompany, "B2", 3)
	s := applied(t, fx, admin, "REM-001", entity.ShipmentOutgoing, lines("A1", 2, "B2", 1))
	qtyA, qtyB := fx.items.qty(testCompany, "A1"), fx.items.qty(testCompany, "B2")

	// B2: delta -(9-1) = -8 con solo 2 disponibles → rechazo; A1 tampoco debe cambiar.
	_, err := fx.uc.Edit(context.Background(), admin, testCompany, s.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentOutgoing,
		Lines:      lines("A1", 5, "B2", 9),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, qtyA, fx.items.qty(testCompany, "A1"))
	assert.EqualValues(t, qtyB, fx.items.qty(testCompany, "B2"))

	// La remesa conserva sus líneas originales.
	stored, _ := fx.shipments.GetByID(s.ID)
	require.Len(t, stored.Lines, 2)
	assert.EqualValues(t, 2, stored.Lines[0].Quantity)
}

// Un SKU que sale del conjunto de líneas debe revertirse; uno nuevo debe aplicarse.
func TestEdit_UnionDeSKUs(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	fx.items.seed(testCompany, "B2", 10)
	s := applied(t, fx, admin, "REM-001", entity.ShipmentIncoming, lines("A1", 4))
	require.EqualValues(t, 14, fx.items.qty(testCompany, "A1"))

	_, err := fx.uc.Edit(context.Background(), admin, testCompany, s.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("B2", 6),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 10, fx.items.qty(testCompany, "A1"), "A1 salió de la remesa → efecto revertido")
	assert.EqualValues(t, 16, fx.items.qty(testCompany, "B2"), "B2 entró a la remesa → efecto aplicado")
}

func TestEdit_RemesaInexistente(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Edit(context.Background(), admin, testCompany, "no-existe", ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEdit_OtraEmpresaEsNotFound(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	s := applied(t, fx, admin, "REM-001", entity.ShipmentIncoming, lines("A1", 1))

	_, err := fx.uc.Edit(context.Background(), admin, "otra-empresa", s.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 2),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — reversión exacta
// ──────────────────────────────────────────────────────────────────────────────

// Aplicar y eliminar de inmediato devuelve cada SKU a su valor previo.
func TestDelete_ReversionExacta(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)
	fx.items.seed(testCompany, "B2", 7)

	s := applied(t, fx, admin, "REM-001", entity.ShipmentOutgoing, lines("A1", 4, "B2", 2))
	require.EqualValues(t, 6, fx.items.qty(testCompany, "A1"))
	require.EqualValues(t, 5, fx.items.qty(testCompany, "B2"))

	require.NoError(t, fx.uc.Delete(context.Background(), admin, testCompany, s.ID))

	assert.EqualValues(t, 10, fx.items.qty(testCompany, "A1"))
	assert.EqualValues(t, 7, fx.items.qty(testCompany, "B2"))
	assert.Empty(t, fx.shipments.shipments)
}

// Revertir una entrada cuyo stock ya fue consumido por otras operaciones dejaría
// la cantidad negativa: la eliminación se rechaza y la remesa sigue existiendo.
func TestDelete_ReversionConStockConsumido(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10)

	entrada := applied(t, fx, admin, "REM-001", entity.ShipmentIncoming, lines("A1", 5)) // 15
	applied(t, fx, admin, "REM-002", entity.ShipmentOutgoing, lines("A1", 12))           // 3

	err := fx.uc.Delete(context.Background(), admin, testCompany, entrada.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 3, stockErr.Available)
	assert.EqualValues(t, 5, stockErr.Requested)

	assert.EqualValues(t, 3, fx.items.qty(testCompany, "A1"))
	_, existe := fx.shipments.shipments[entrada.ID]
	assert.True(t, existe, "la remesa no debe eliminarse si la reversión falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservación
// ──────────────────────────────────────────────────────────────────────────────

// Para un SKU con semilla Q0, tras una secuencia de aplicar/editar/eliminar el
// stock es Q0 + entradas aplicadas - salidas aplicadas (solo remesas vivas), y
// nunca fue negativo en ningún punto de observación.
func TestConservacionTrasSecuencia(t *testing.T) {
	fx := newFixture()
	fx.items.seed(testCompany, "A1", 10) // Q0 = 10

	s1 := applied(t, fx, admin, "REM-001", entity.ShipmentIncoming, lines("A1", 5)) // 15
	assert.GreaterOrEqual(t, fx.items.qty(testCompany, "A1"), int64(0))
	applied(t, fx, admin, "REM-002", entity.ShipmentIncoming, lines("A1", 3)) // 18
	applied(t, fx, admin, "REM-003", entity.ShipmentOutgoing, lines("A1", 4)) // 14
	assert.GreaterOrEqual(t, fx.items.qty(testCompany, "A1"), int64(0))

	// Editar REM-001 de 5 a 2 unidades de entrada: delta -3 → 11.
	_, err := fx.uc.Edit(context.Background(), admin, testCompany, s1.ID, ledger.ShipmentInput{
		ShipmentID: "REM-001",
		Type:       entity.ShipmentIncoming,
		Lines:      lines("A1", 2),
	})
	require.NoError(t, err)

	// Eliminar REM-002: -3 → 8.
	var rem002 string
	for id, s := range fx.shipments.shipments {
		if s.ShipmentID == "REM-002" {
			rem002 = id
		}
	}
	require.NoError(t, fx.uc.Delete(context.Background(), admin, testCompany, rem002))

	// Vivas: entrada 2 (REM-001 editada), salida 4 (REM-003). Q0 + 2 - 4 = 8.
	assert.EqualValues(t, 8, fx.items.qty(testCompany, "A1"))
}
