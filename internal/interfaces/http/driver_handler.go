package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/usecase"
)

// DriverHandler maneja el directorio de choferes.
type DriverHandler struct {
	uc *usecase.DriverUseCase
}

// NewDriverHandler construye el handler.
func NewDriverHandler(uc *usecase.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de chofer
// @Tags         drivers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "Datos del chofer"
// @Success      201   {object}  dto.DriverResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drivers [post]
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(driverToDTO(d))
}

// List godoc
// @Summary      Listar choferes
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DriverResponse
// @Router       /api/drivers [get]
func (h *DriverHandler) List(c *fiber.Ctx) error {
	drivers, err := h.uc.List(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, driverToDTO(d))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener chofer por ID
// @Tags         drivers
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del chofer"
// @Success      200  {object}  dto.DriverResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [get]
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	d, err := h.uc.Get(c.Context(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(driverToDTO(d))
}

// Update godoc
// @Summary      Actualizar chofer
// @Tags         drivers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del chofer"
// @Param        body  body  dto.CreateDriverRequest  true  "Datos y estado (Activo/Inactivo)"
// @Success      200   {object}  dto.DriverResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [put]
func (h *DriverHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in struct {
		dto.CreateDriverRequest
		Status string `json:"estado"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Update(c.Context(), int64(id), in.CreateDriverRequest, in.Status)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(driverToDTO(d))
}

// Delete godoc
// @Summary      Baja de chofer en dos pasos (solo admin)
// @Tags         drivers
// @Security     Bearer
// @Param        id       path   int   true   "ID del chofer"
// @Param        confirm  query  bool  false  "Confirmación de la baja"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/drivers/{id} [delete]
func (h *DriverHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id), c.QueryBool("confirm")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
