package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación de ShipmentRepository sobre PostgreSQL.
// Las líneas se guardan como JSONB en la misma fila: siempre se leen y
// escriben junto con su remesa, nunca por separado.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de remesas. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `id, company_id, shipment_id, type, lines, timestamp, submitted_by_user_id, submitted_by_email, approved_by_email, created_at`

// Create inserta una remesa aplicada.
func (r *ShipmentRepo) Create(s *entity.Shipment) error {
	lines, err := json.Marshal(s.Lines)
	if err != nil {
		return fmt.Errorf("serializar líneas: %w", err)
	}
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		s.ID, s.CompanyID, s.ShipmentID, s.Type, lines, s.Timestamp,
		s.SubmittedByUserID, s.SubmittedByEmail, s.ApprovedByEmail, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create shipment: %w", err)
	}
	return nil
}

// GetByID obtiene una remesa por su id. Devuelve nil sin error si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	var (
		s     entity.Shipment
		lines []byte
	)
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.ShipmentID, &s.Type, &lines, &s.Timestamp,
		&s.SubmittedByUserID, &s.SubmittedByEmail, &s.ApprovedByEmail, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	if err := json.Unmarshal(lines, &s.Lines); err != nil {
		return nil, fmt.Errorf("deserializar líneas: %w", err)
	}
	return &s, nil
}

// Update reescribe etiqueta, tipo y líneas de una remesa ya aplicada.
func (r *ShipmentRepo) Update(s *entity.Shipment) error {
	lines, err := json.Marshal(s.Lines)
	if err != nil {
		return fmt.Errorf("serializar líneas: %w", err)
	}
	query := `
		UPDATE shipments
		SET shipment_id = $2, type = $3, lines = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, s.ID, s.ShipmentID, s.Type, lines)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una remesa por id.
func (r *ShipmentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista remesas de la empresa, más recientes primero.
// shipmentType vacío lista ambos tipos.
func (r *ShipmentRepo) ListByCompany(companyID, shipmentType string, limit, offset int) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + ` FROM shipments
		WHERE company_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY timestamp DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, shipmentType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Shipment
	for rows.Next() {
		var (
			s     entity.Shipment
			lines []byte
		)
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.ShipmentID, &s.Type, &lines, &s.Timestamp,
			&s.SubmittedByUserID, &s.SubmittedByEmail, &s.ApprovedByEmail, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		if err := json.Unmarshal(lines, &s.Lines); err != nil {
			return nil, fmt.Errorf("deserializar líneas: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// ExistsShipmentID chequeo case-insensitive de la etiqueta entre remesas aplicadas.
func (r *ShipmentRepo) ExistsShipmentID(companyID, shipmentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM shipments WHERE company_id = $1 AND lower(shipment_id) = lower($2))`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, companyID, shipmentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check shipment id: %w", err)
	}
	return exists, nil
}
