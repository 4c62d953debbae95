package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/domain"
)

// VehicleHandler maneja las peticiones HTTP de la flota.
type VehicleHandler struct {
	uc *fleet.UseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *fleet.UseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de móvil
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehicleRequest  true  "Datos del móvil"
// @Success      201   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.CreateVehicle(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vehicleToDTO(v, h.uc.ServiceStatus(v)))
}

// List godoc
// @Summary      Listar la flota con su estado de service
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VehicleResponse
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	vehicles, err := h.uc.ListVehicles(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, vehicleToDTO(v, h.uc.ServiceStatus(v)))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener móvil por ID
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del móvil"
// @Success      200  {object}  dto.VehicleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	v, err := h.uc.GetVehicle(c.Context(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(vehicleToDTO(v, h.uc.ServiceStatus(v)))
}

// Update godoc
// @Summary      Actualizar datos del móvil (no modifica el odómetro)
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del móvil"
// @Param        body  body  dto.CreateVehicleRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.VehicleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.UpdateVehicle(c.Context(), int64(id), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(vehicleToDTO(v, h.uc.ServiceStatus(v)))
}

// UpdateOdometer godoc
// @Summary      Actualizar odómetro con guarda de retroceso
// @Description  Rechaza con 409 un kilometraje menor al vigente salvo que el
//               body traiga force=true (corrección manual explícita).
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del móvil"
// @Param        body  body  dto.UpdateOdometerRequest  true  "km y force"
// @Success      200   {object}  dto.VehicleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id}/odometer [put]
func (h *VehicleHandler) UpdateOdometer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.UpdateOdometerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.UpdateOdometer(c.Context(), int64(id), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(vehicleToDTO(v, h.uc.ServiceStatus(v)))
}

// Delete godoc
// @Summary      Baja de móvil en dos pasos
// @Description  El primer intento sin ?confirm=true devuelve 409; el historial
//               de OTs del móvil se conserva.
// @Tags         vehicles
// @Security     Bearer
// @Param        id       path   int   true   "ID del móvil"
// @Param        confirm  query  bool  false  "Confirmación de la baja"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	err = h.uc.DeleteVehicle(c.Context(), int64(id), c.QueryBool("confirm"))
	if err != nil {
		if errors.Is(err, domain.ErrConfirmationNeeded) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "CONFIRM_REQUIRED",
				Message: "repita la baja con ?confirm=true; las OTs históricas del móvil se conservan",
			})
		}
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ServiceAlerts godoc
// @Summary      Móviles con service próximo o vencido
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VehicleResponse
// @Router       /api/vehicles/alerts [get]
func (h *VehicleHandler) ServiceAlerts(c *fiber.Ctx) error {
	vehicles, err := h.uc.ServiceAlerts(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, vehicleToDTO(v, h.uc.ServiceStatus(v)))
	}
	return c.JSON(out)
}

// CostPerKM godoc
// @Summary      Costo por kilómetro por móvil
// @Description  Combina gasto de mantenimiento de OTs cerradas y combustible
//               sobre los km recorridos registrados.
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VehicleCPKDTO
// @Router       /api/vehicles/cpk [get]
func (h *VehicleHandler) CostPerKM(c *fiber.Ctx) error {
	out, err := h.uc.CostPerKM(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
