package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, company_id, sku, description, category, location, quantity, min_quantity, unit_cost, notes, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.CompanyID, &it.SKU, &it.Description, &it.Category, &it.Location,
		&it.Quantity, &it.MinQuantity, &it.UnitCost, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// Create inserta un artículo. Violación del único (company_id, sku) -> ErrDuplicate.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.SKU, item.Description, item.Category, item.Location,
		item.Quantity, item.MinQuantity, item.UnitCost, item.Notes, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por su id. Devuelve nil sin error si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByCompanyAndSKU busca por empresa y SKU exacto.
func (r *ItemRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE company_id = $1 AND sku = $2`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, companyID, sku))
	if err != nil {
		return nil, fmt.Errorf("get item by sku: %w", err)
	}
	return it, nil
}

// GetBySKUForUpdate busca por empresa y SKU bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ItemRepo) GetBySKUForUpdate(companyID, sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE company_id = $1 AND sku = $2 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, companyID, sku))
	if err != nil {
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// Update guarda todos los campos editables del artículo.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET description = $2, category = $3, location = $4, quantity = $5,
		    min_quantity = $6, unit_cost = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Description, item.Category, item.Location, item.Quantity,
		item.MinQuantity, item.UnitCost, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad de un SKU. Lo usa el ledger tras validar
// los deltas con la fila ya bloqueada.
func (r *ItemRepo) UpdateQuantity(companyID, sku string, quantity int64) error {
	query := `
		UPDATE inventory_items SET quantity = $3, updated_at = now()
		WHERE company_id = $1 AND sku = $2`
	tag, err := r.q.Exec(context.Background(), query, companyID, sku, quantity)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista el catálogo de una empresa ordenado por SKU.
func (r *ItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// Search búsqueda por subcadena (ILIKE) sobre sku, descripción, categoría y ubicación.
func (r *ItemRepo) Search(companyID, term string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1
		  AND (sku ILIKE $2 OR description ILIKE $2 OR category ILIKE $2 OR location ILIKE $2)
		ORDER BY sku LIMIT $3 OFFSET $4`
	return r.list(query, companyID, "%"+term+"%", limit, offset)
}

// ListLowStock artículos con cantidad en o bajo su mínimo configurado.
func (r *ItemRepo) ListLowStock(companyID string) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + ` FROM inventory_items
		WHERE company_id = $1 AND min_quantity > 0 AND quantity <= min_quantity
		ORDER BY sku`
	return r.list(query, companyID)
}

// Delete elimina un artículo por id.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.CompanyID, &it.SKU, &it.Description, &it.Category, &it.Location,
			&it.Quantity, &it.MinQuantity, &it.UnitCost, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
