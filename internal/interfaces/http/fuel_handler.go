package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/application/usecase"
)

// FuelHandler maneja las cargas de combustible.
type FuelHandler struct {
	fleet   *fleet.UseCase
	drivers *usecase.DriverUseCase
}

// NewFuelHandler construye el handler.
func NewFuelHandler(fleetUC *fleet.UseCase, drivers *usecase.DriverUseCase) *FuelHandler {
	return &FuelHandler{fleet: fleetUC, drivers: drivers}
}

// Create godoc
// @Summary      Registrar carga de combustible
// @Description  Actualiza el odómetro del móvil como efecto secundario; un km
//               menor al vigente se rechaza con 409 salvo force=true.
// @Tags         fuel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFuelLogRequest  true  "Datos de la carga"
// @Success      201   {object}  dto.FuelLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fuel [post]
func (h *FuelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFuelLogRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	logEntry, err := h.fleet.RegisterFuelLog(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fuelLogToDTO(logEntry, h.vehicleName(c, logEntry.VehicleID), h.driverName(c, logEntry.DriverID)))
}

// List godoc
// @Summary      Historial de cargas
// @Tags         fuel
// @Security     Bearer
// @Produce      json
// @Param        vehiculo_id  query  int  false  "Filtrar por móvil"
// @Param        limit        query  int  false  "Límite"  default(50)
// @Success      200  {array}  dto.FuelLogResponse
// @Router       /api/fuel [get]
func (h *FuelHandler) List(c *fiber.Ctx) error {
	vehicleID := int64(c.QueryInt("vehiculo_id", 0))
	limit := c.QueryInt("limit", 50)

	logs, err := h.fleet.ListFuelLogs(c.Context(), vehicleID, limit)
	if err != nil {
		return respondDomainError(c, err)
	}

	vehicleNames := h.vehicleNames(c)
	driverNames := h.driverNames(c)
	out := make([]dto.FuelLogResponse, 0, len(logs))
	for _, l := range logs {
		driver := ""
		if l.DriverID != nil {
			driver = driverNames[*l.DriverID]
		}
		out = append(out, fuelLogToDTO(l, vehicleNames[l.VehicleID], driver))
	}
	return c.JSON(out)
}

// Ranking godoc
// @Summary      Ranking de consumo por chofer
// @Tags         fuel
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DriverConsumptionDTO
// @Router       /api/fuel/ranking [get]
func (h *FuelHandler) Ranking(c *fiber.Ctx) error {
	rows, err := h.fleet.FuelRanking(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.DriverConsumptionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DriverConsumptionDTO{
			DriverName:  r.DriverName,
			Loads:       r.Loads,
			TotalLiters: r.TotalLiters,
		})
	}
	return c.JSON(out)
}

func (h *FuelHandler) vehicleName(c *fiber.Ctx, id int64) string {
	v, err := h.fleet.GetVehicle(c.Context(), id)
	if err != nil {
		return ""
	}
	return v.Name
}

func (h *FuelHandler) driverName(c *fiber.Ctx, id *int64) string {
	if id == nil {
		return ""
	}
	d, err := h.drivers.Get(c.Context(), *id)
	if err != nil {
		return ""
	}
	return d.Name
}

func (h *FuelHandler) vehicleNames(c *fiber.Ctx) map[int64]string {
	names := map[int64]string{}
	vehicles, err := h.fleet.ListVehicles(c.Context())
	if err != nil {
		return names
	}
	for _, v := range vehicles {
		names[v.ID] = v.Name
	}
	return names
}

func (h *FuelHandler) driverNames(c *fiber.Ctx) map[int64]string {
	names := map[int64]string{}
	drivers, err := h.drivers.List(c.Context())
	if err != nil {
		return names
	}
	for _, d := range drivers {
		names[d.ID] = d.Name
	}
	return names
}
