package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/scan"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// ScanHandler escaneo de documentos de remesa (protegido).
type ScanHandler struct {
	uc *scan.ScanUseCase
}

// NewScanHandler construye el handler de escaneo.
func NewScanHandler(uc *scan.ScanUseCase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// Scan godoc
// @Summary      Escanear documento de remesa
// @Description  Extrae texto de la imagen vía OCR y propone renglones emparejados contra el catálogo. Las sugerencias se revisan antes de registrar la remesa por el flujo normal.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Imagen en base64"
// @Success      200   {object}  dto.ScanResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Scan(c.Context(), companyID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image_base64 es requerido"})
		}
		// El OCR es un servicio externo: sus fallos son del gateway, no nuestros.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "OCR_FAILED", Message: err.Error()})
	}
	return c.JSON(out)
}
