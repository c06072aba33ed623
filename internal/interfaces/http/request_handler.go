package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
)

// RequestHandler maneja la cola de solicitudes de remesa pendientes (protegido).
type RequestHandler struct {
	uc *ledger.LedgerUseCase
}

// NewRequestHandler construye el handler de solicitudes.
func NewRequestHandler(uc *ledger.LedgerUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// ListPending godoc
// @Summary      Listar solicitudes pendientes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.ShipmentRequestResponse
// @Router       /api/requests [get]
func (h *RequestHandler) ListPending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	requests, err := h.uc.ListPendingRequests(c.Context(), GetCompanyID(c), limit, offset)
	if err != nil {
		return respondLedgerError(c, err)
	}
	out := make([]dto.ShipmentRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestResponse(r))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud de remesa
// @Description  Aplica la remesa con las líneas y remitente originales y elimina la solicitud. Si la aplicación falla, la solicitud queda intacta.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      201  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	shipment, err := h.uc.Approve(c.Context(), actorFromCtx(c), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(shipment))
}

// Reject godoc
// @Summary      Rechazar solicitud de remesa
// @Description  Elimina la solicitud sin efecto alguno sobre el inventario.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.Reject(c.Context(), actorFromCtx(c), GetCompanyID(c), c.Params("id")); err != nil {
		return respondLedgerError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
