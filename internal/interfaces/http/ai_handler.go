package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/usecase"
)

// maxImageBytes limita el tamaño de la foto a interpretar.
const maxImageBytes = 8 << 20 // 8 MB

// AIHandler maneja la pre-carga de OTs asistida por IA. Las sugerencias no
// persisten nada: el operador las revisa y confirma la creación a mano.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// AnalyzeText godoc
// @Summary      Interpretar un parte de novedades en texto libre
// @Description  Devuelve órdenes de trabajo sugeridas. Si el servicio de IA
//               falla o no está configurado, devuelve una lista vacía.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AnalyzeTextRequest  true  "Texto del parte"
// @Success      200   {array}  dto.SuggestedOrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/analyze-text [post]
func (h *AIHandler) AnalyzeText(c *fiber.Ctx) error {
	var in dto.AnalyzeTextRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AnalyzeText(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// AnalyzeImage godoc
// @Summary      Interpretar la foto de un remito o pedido manuscrito
// @Tags         ai
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        imagen  formData  file  true  "Foto del remito"
// @Success      200  {array}  dto.SuggestedOrderDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ai/analyze-image [post]
func (h *AIHandler) AnalyzeImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "falta el campo 'imagen'"})
	}
	if fileHeader.Size > maxImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "la imagen supera los 8 MB"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la imagen"})
	}

	out, err := h.uc.AnalyzeImage(c.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
