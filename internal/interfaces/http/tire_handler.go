package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/usecase"
)

// TireHandler maneja el stock de cubiertas por lote.
type TireHandler struct {
	uc *usecase.TireUseCase
}

// NewTireHandler construye el handler.
func NewTireHandler(uc *usecase.TireUseCase) *TireHandler {
	return &TireHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de lote de cubiertas
// @Tags         tires
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTireLotRequest  true  "Datos del lote"
// @Success      201   {object}  dto.TireLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tires [post]
func (h *TireHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTireLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tireToDTO(t))
}

// List godoc
// @Summary      Listar lotes de cubiertas
// @Tags         tires
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TireLotResponse
// @Router       /api/tires [get]
func (h *TireHandler) List(c *fiber.Ctx) error {
	lots, err := h.uc.List(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.TireLotResponse, 0, len(lots))
	for _, t := range lots {
		out = append(out, tireToDTO(t))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar lote de cubiertas
// @Tags         tires
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del lote"
// @Param        body  body  dto.CreateTireLotRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TireLotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tires/{id} [put]
func (h *TireHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.CreateTireLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Update(c.Context(), int64(id), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(tireToDTO(t))
}

// Delete godoc
// @Summary      Baja de lote en dos pasos (solo admin)
// @Tags         tires
// @Security     Bearer
// @Param        id       path   int   true   "ID del lote"
// @Param        confirm  query  bool  false  "Confirmación de la baja"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tires/{id} [delete]
func (h *TireHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id), c.QueryBool("confirm")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
