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

var _ repository.ShipmentRequestRepository = (*ShipmentRequestRepo)(nil)

// ShipmentRequestRepo implementación de ShipmentRequestRepository sobre PostgreSQL.
type ShipmentRequestRepo struct {
	q Querier
}

// NewShipmentRequestRepository construye el adaptador de solicitudes. Pasar pool o tx (Querier).
func NewShipmentRequestRepository(q Querier) *ShipmentRequestRepo {
	return &ShipmentRequestRepo{q: q}
}

const requestColumns = `id, company_id, shipment_id, type, lines, status, timestamp, submitted_by_user_id, submitted_by_email, created_at`

// Create inserta una solicitud pendiente.
func (r *ShipmentRequestRepo) Create(req *entity.ShipmentRequest) error {
	lines, err := json.Marshal(req.Lines)
	if err != nil {
		return fmt.Errorf("serializar líneas: %w", err)
	}
	query := `
		INSERT INTO shipment_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		req.ID, req.CompanyID, req.ShipmentID, req.Type, lines, req.Status,
		req.Timestamp, req.SubmittedByUserID, req.SubmittedByEmail, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create shipment request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por su id. Devuelve nil sin error si no existe.
func (r *ShipmentRequestRepo) GetByID(id string) (*entity.ShipmentRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM shipment_requests WHERE id = $1`
	var (
		req   entity.ShipmentRequest
		lines []byte
	)
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.CompanyID, &req.ShipmentID, &req.Type, &lines, &req.Status,
		&req.Timestamp, &req.SubmittedByUserID, &req.SubmittedByEmail, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment request: %w", err)
	}
	if err := json.Unmarshal(lines, &req.Lines); err != nil {
		return nil, fmt.Errorf("deserializar líneas: %w", err)
	}
	return &req, nil
}

// ListPendingByCompany lista solicitudes pendientes, más antiguas primero
// (orden de llegada para la cola de aprobación).
func (r *ShipmentRequestRepo) ListPendingByCompany(companyID string, limit, offset int) ([]*entity.ShipmentRequest, error) {
	query := `
		SELECT ` + requestColumns + ` FROM shipment_requests
		WHERE company_id = $1 AND status = $2
		ORDER BY created_at ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, entity.RequestPending, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shipment requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.ShipmentRequest
	for rows.Next() {
		var (
			req   entity.ShipmentRequest
			lines []byte
		)
		if err := rows.Scan(
			&req.ID, &req.CompanyID, &req.ShipmentID, &req.Type, &lines, &req.Status,
			&req.Timestamp, &req.SubmittedByUserID, &req.SubmittedByEmail, &req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shipment request: %w", err)
		}
		if err := json.Unmarshal(lines, &req.Lines); err != nil {
			return nil, fmt.Errorf("deserializar líneas: %w", err)
		}
		out = append(out, &req)
	}
	return out, rows.Err()
}

// Delete elimina una solicitud (tras aprobar o rechazar).
func (r *ShipmentRequestRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM shipment_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsShipmentID chequeo case-insensitive de la etiqueta entre solicitudes pendientes.
func (r *ShipmentRequestRepo) ExistsShipmentID(companyID, shipmentID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM shipment_requests
			WHERE company_id = $1 AND status = $2 AND lower(shipment_id) = lower($3))`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, companyID, entity.RequestPending, shipmentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check request shipment id: %w", err)
	}
	return exists, nil
}
