package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ShipmentHandler maneja el ciclo de vida de remesas (protegido).
type ShipmentHandler struct {
	uc *ledger.LedgerUseCase
}

// NewShipmentHandler construye el handler de remesas.
func NewShipmentHandler(uc *ledger.LedgerUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// actorFromCtx arma el Actor del ledger con los claims del token.
func actorFromCtx(c *fiber.Ctx) ledger.Actor {
	return ledger.Actor{
		UserID: GetUserID(c),
		Email:  GetEmail(c),
		Role:   GetRole(c),
	}
}

func toShipmentInput(in dto.LogShipmentRequest) ledger.ShipmentInput {
	lines := make([]ledger.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, ledger.LineInput{SKU: l.ItemSKU, Description: l.Description, Quantity: l.Quantity})
	}
	return ledger.ShipmentInput{
		ShipmentID:       in.ShipmentID,
		Type:             in.Type,
		Lines:            lines,
		ConfirmDuplicate: in.ConfirmDuplicate,
	}
}

func toLineDTOs(lines []entity.ShipmentLine) []dto.ShipmentLineDTO {
	out := make([]dto.ShipmentLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ShipmentLineDTO{ItemSKU: l.ItemSKU, Description: l.Description, Quantity: l.Quantity})
	}
	return out
}

func toShipmentResponse(s *entity.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:                s.ID,
		ShipmentID:        s.ShipmentID,
		Type:              s.Type,
		Lines:             toLineDTOs(s.Lines),
		Timestamp:         s.Timestamp,
		SubmittedByUserID: s.SubmittedByUserID,
		SubmittedByEmail:  s.SubmittedByEmail,
		ApprovedByEmail:   s.ApprovedByEmail,
	}
}

func toRequestResponse(r *entity.ShipmentRequest) dto.ShipmentRequestResponse {
	return dto.ShipmentRequestResponse{
		ID:               r.ID,
		ShipmentID:       r.ShipmentID,
		Type:             r.Type,
		Lines:            toLineDTOs(r.Lines),
		Status:           r.Status,
		Timestamp:        r.Timestamp,
		SubmittedByEmail: r.SubmittedByEmail,
	}
}

// respondLedgerError mapea errores del ledger a códigos HTTP. La detección de
// etiqueta duplicada responde 409 DUPLICATE_SHIPMENT_ID: el cliente reintenta
// la misma petición con confirm_duplicate=true si el usuario confirma.
func respondLedgerError(c *fiber.Ctx, err error) error {
	var unknownItem *domain.UnknownItemError
	var stockErr *domain.StockError
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "remesa inválida: etiqueta, tipo y líneas con sku y cantidad positiva son requeridos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicateShipmentID):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SHIPMENT_ID", Message: "número de remesa ya utilizado; reintente con confirm_duplicate=true para proceder"})
	case errors.As(err, &unknownItem):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNKNOWN_ITEM", Message: unknownItem.Error()})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
	case errors.Is(err, domain.ErrTransactionFailed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TX_FAILED", Message: "la transacción no pudo confirmarse; reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Log godoc
// @Summary      Registrar remesa
// @Description  Admin/editor aplican directo al inventario (201). Submitter crea una solicitud pendiente de aprobación (202).
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogShipmentRequest  true  "Remesa"
// @Success      201   {object}  dto.ShipmentResponse
// @Success      202   {object}  dto.ShipmentRequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Log(c *fiber.Ctx) error {
	var in dto.LogShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.SubmitOrApply(c.Context(), actorFromCtx(c), GetCompanyID(c), toShipmentInput(in))
	if err != nil {
		return respondLedgerError(c, err)
	}
	if result.Shipment != nil {
		return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(result.Shipment))
	}
	return c.Status(fiber.StatusAccepted).JSON(toRequestResponse(result.Request))
}

// List godoc
// @Summary      Listar remesas
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "incoming | outgoing"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ShipmentListResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	shipments, err := h.uc.ListShipments(c.Context(), GetCompanyID(c), c.Query("type"), limit, offset)
	if err != nil {
		return respondLedgerError(c, err)
	}
	out := dto.ShipmentListResponse{
		Items: make([]dto.ShipmentResponse, 0, len(shipments)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, s := range shipments {
		out.Items = append(out.Items, toShipmentResponse(s))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener remesa por ID
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la remesa"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	shipment, err := h.uc.GetShipment(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondLedgerError(c, err)
	}
	return c.JSON(toShipmentResponse(shipment))
}

// Edit godoc
// @Summary      Editar remesa aplicada
// @Description  Ajusta el inventario por el delta neto entre la versión vieja y la nueva, todo-o-nada.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la remesa"
// @Param        body  body  dto.LogShipmentRequest  true  "Nueva versión de la remesa"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) Edit(c *fiber.Ctx) error {
	var in dto.LogShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shipment, err := h.uc.Edit(c.Context(), actorFromCtx(c), GetCompanyID(c), c.Params("id"), toShipmentInput(in))
	if err != nil {
		return respondLedgerError(c, err)
	}
	return c.JSON(toShipmentResponse(shipment))
}

// Delete godoc
// @Summary      Eliminar remesa
// @Description  Revierte el efecto exacto de la remesa sobre el inventario y elimina el registro.
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la remesa"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actorFromCtx(c), GetCompanyID(c), c.Params("id")); err != nil {
		return respondLedgerError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckID godoc
// @Summary      Chequeo advisory de etiqueta de remesa
// @Description  Indica si la etiqueta ya existe (case-insensitive) entre remesas aplicadas o solicitudes pendientes. Nunca bloquea.
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        shipment_id  query  string  true  "Etiqueta a verificar"
// @Success      200  {object}  dto.DuplicateCheckResponse
// @Router       /api/shipments/check-id [get]
func (h *ShipmentHandler) CheckID(c *fiber.Ctx) error {
	shipmentID := c.Query("shipment_id")
	if shipmentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "shipment_id es requerido"})
	}
	dup, err := h.uc.CheckDuplicateID(c.Context(), GetCompanyID(c), shipmentID)
	if err != nil {
		return respondLedgerError(c, err)
	}
	return c.JSON(dto.DuplicateCheckResponse{ShipmentID: shipmentID, Duplicate: dup})
}
