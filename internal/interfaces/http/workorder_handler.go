package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/application/inventory"
	"github.com/transportechiro/flota-api/internal/application/usecase"
	"github.com/transportechiro/flota-api/internal/application/workorder"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
	"github.com/transportechiro/flota-api/internal/infrastructure/pdf"
)

// WorkOrderHandler maneja las órdenes de trabajo y sus solicitudes de
// repuestos. También arma la ficha PDF de la OT.
type WorkOrderHandler struct {
	orders    *workorder.UseCase
	fleet     *fleet.UseCase
	drivers   *usecase.DriverUseCase
	inventory *inventory.UseCase
	report    *pdf.MarotoOrderReport
	company   string
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(
	orders *workorder.UseCase,
	fleetUC *fleet.UseCase,
	drivers *usecase.DriverUseCase,
	inventoryUC *inventory.UseCase,
	report *pdf.MarotoOrderReport,
	company string,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		orders:    orders,
		fleet:     fleetUC,
		drivers:   drivers,
		inventory: inventoryUC,
		report:    report,
		company:   company,
	}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Description  Las tareas en texto libre se deduplican contra el catálogo
//               canónico. Los repuestos pedidos quedan como solicitudes
//               pendientes; un admin las aprueba en el mismo paso.
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "Datos de la OT"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workorders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orders.Create(c.Context(), actorFromCtx(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.orderResponse(c, order)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de OTs
// @Tags         workorders
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "Filtrar por estado"
// @Param        q       query  string  false  "Buscar en descripción y observaciones"
// @Param        fecha   query  string  false  "Solo OTs de ese día (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(100)
// @Success      200  {array}  dto.WorkOrderResponse
// @Router       /api/workorders [get]
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	var orders []*entity.WorkOrder
	var err error
	if date := c.Query("fecha"); date != "" {
		orders, err = h.orders.ListByDate(c.Context(), date, c.QueryInt("limit", 50))
	} else {
		orders, err = h.orders.List(c.Context(), repository.WorkOrderFilter{
			Status: c.Query("estado"),
			Text:   c.Query("q"),
			Limit:  c.QueryInt("limit", 100),
		})
	}
	if err != nil {
		return respondDomainError(c, err)
	}

	vehicleNames := h.vehicleNames(c)
	driverNames := h.driverNames(c)
	out := make([]dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		driver := ""
		if o.DriverID != nil {
			driver = driverNames[*o.DriverID]
		}
		// El listado no carga tareas ni solicitudes; el detalle sí.
		out = append(out, orderToDTO(o, vehicleNames[o.VehicleID], driver, nil, nil))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una OT con tareas y solicitudes
// @Tags         workorders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la OT"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	order, err := h.orders.Get(c.Context(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.orderResponse(c, order)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar una OT abierta
// @Description  Las transiciones de estado solo van hacia adelante; pasar a
//               "Cerrada" por esta vía equivale a cerrar la orden.
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la OT"
// @Param        body  body  dto.UpdateWorkOrderRequest  true  "Cambios parciales"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id} [put]
func (h *WorkOrderHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.UpdateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orders.Update(c.Context(), int64(id), actorFromCtx(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.orderResponse(c, order)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar una OT
// @Description  Calcula el costo total: terceros más repuestos aprobados
//               valuados a precio de aprobación. El cierre es definitivo.
// @Tags         workorders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la OT"
// @Param        body  body  dto.CloseWorkOrderRequest  false  "Observaciones de cierre y costo de terceros definitivo"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/close [post]
func (h *WorkOrderHandler) Close(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.CloseWorkOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	order, err := h.orders.Close(c.Context(), int64(id), actorFromCtx(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.orderResponse(c, order)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Baja de OT en dos pasos (solo admin)
// @Description  Sin ?confirm=true devuelve 409 con el resumen de lo que se va
//               a borrar. El kardex conserva los asientos con la referencia.
// @Tags         workorders
// @Security     Bearer
// @Param        id       path   int   true   "ID de la OT"
// @Param        confirm  query  bool  false  "Confirmación de la baja"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id} [delete]
func (h *WorkOrderHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	summary, err := h.orders.Delete(c.Context(), int64(id), c.QueryBool("confirm"))
	if err != nil {
		if errors.Is(err, domain.ErrConfirmationNeeded) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":    "CONFIRM_REQUIRED",
				"message": "repita la baja con ?confirm=true",
				"resumen": summary,
			})
		}
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Requests godoc
// @Summary      Solicitudes de repuestos de una OT
// @Tags         workorders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la OT"
// @Success      200  {array}  dto.PartsRequestResponse
// @Router       /api/workorders/{id}/requests [get]
func (h *WorkOrderHandler) Requests(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	reqs, err := h.orders.RequestsByOrder(c.Context(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(h.requestDTOs(c, reqs))
}

// PDF godoc
// @Summary      Ficha imprimible de la OT
// @Tags         workorders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la OT"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/pdf [get]
func (h *WorkOrderHandler) PDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	order, err := h.orders.Get(c.Context(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}

	vehicle, err := h.fleet.GetVehicle(c.Context(), order.VehicleID)
	if err != nil {
		return respondDomainError(c, err)
	}
	driverName := ""
	if order.DriverID != nil {
		if d, derr := h.drivers.Get(c.Context(), *order.DriverID); derr == nil {
			driverName = d.Name
		}
	}

	tasks, err := h.orders.Tasks(c.Context(), order.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	taskNames := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskNames = append(taskNames, t.Name)
	}

	reqs, err := h.orders.RequestsByOrder(c.Context(), order.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	parts := make([]pdf.OrderReportPart, 0, len(reqs))
	for _, r := range reqs {
		parts = append(parts, pdf.OrderReportPart{
			Name:     h.itemName(c, r.StockItemID),
			Quantity: r.Quantity,
			Status:   r.Status,
		})
	}

	partsCost, err := h.orders.PartsCost(c.Context(), order.ID)
	if err != nil {
		return respondDomainError(c, err)
	}

	raw, err := h.report.Generate(pdf.OrderReportData{
		CompanyName: h.company,
		Order:       order,
		VehicleName: vehicle.Name,
		Plate:       vehicle.Plate,
		OdometerKM:  vehicle.CurrentKM,
		DriverName:  driverName,
		Tasks:       taskNames,
		Parts:       parts,
		PartsCost:   partsCost,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="OT_%d.pdf"`, order.ID))
	return c.Send(raw)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (h *WorkOrderHandler) orderResponse(c *fiber.Ctx, order *entity.WorkOrder) (dto.WorkOrderResponse, error) {
	vehicleName := ""
	if v, err := h.fleet.GetVehicle(c.Context(), order.VehicleID); err == nil {
		vehicleName = v.Name
	}
	driverName := ""
	if order.DriverID != nil {
		if d, err := h.drivers.Get(c.Context(), *order.DriverID); err == nil {
			driverName = d.Name
		}
	}
	tasks, err := h.orders.Tasks(c.Context(), order.ID)
	if err != nil {
		return dto.WorkOrderResponse{}, err
	}
	reqs, err := h.orders.RequestsByOrder(c.Context(), order.ID)
	if err != nil {
		return dto.WorkOrderResponse{}, err
	}
	return orderToDTO(order, vehicleName, driverName, tasks, h.requestDTOs(c, reqs)), nil
}

func (h *WorkOrderHandler) requestDTOs(c *fiber.Ctx, reqs []*entity.PartsRequest) []dto.PartsRequestResponse {
	out := make([]dto.PartsRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, requestToDTO(r, h.itemName(c, r.StockItemID)))
	}
	return out
}

func (h *WorkOrderHandler) itemName(c *fiber.Ctx, stockItemID int64) string {
	item, err := h.inventory.GetItem(c.Context(), stockItemID)
	if err != nil {
		return ""
	}
	return item.Name
}

func (h *WorkOrderHandler) vehicleNames(c *fiber.Ctx) map[int64]string {
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

func (h *WorkOrderHandler) driverNames(c *fiber.Ctx) map[int64]string {
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
