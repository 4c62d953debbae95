package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/inventory"
	"github.com/transportechiro/flota-api/internal/application/workorder"
)

// PartsRequestHandler maneja la aprobación diferida de repuestos.
// Todas sus rutas son solo-admin.
type PartsRequestHandler struct {
	orders    *workorder.UseCase
	inventory *inventory.UseCase
}

// NewPartsRequestHandler construye el handler.
func NewPartsRequestHandler(orders *workorder.UseCase, inventoryUC *inventory.UseCase) *PartsRequestHandler {
	return &PartsRequestHandler{orders: orders, inventory: inventoryUC}
}

// Pending godoc
// @Summary      Solicitudes de repuestos pendientes (solo admin)
// @Tags         parts-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartsRequestResponse
// @Router       /api/parts-requests/pending [get]
func (h *PartsRequestHandler) Pending(c *fiber.Ctx) error {
	reqs, err := h.orders.PendingRequests(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.PartsRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		itemName := ""
		if item, ierr := h.inventory.GetItem(c.Context(), r.StockItemID); ierr == nil {
			itemName = item.Name
		}
		out = append(out, requestToDTO(r, itemName))
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar una solicitud (solo admin)
// @Description  Descuenta el stock y asienta la salida en el kardex con la
//               referencia a la OT. Una solicitud ya resuelta devuelve 409;
//               stock insuficiente también, sin tocar nada.
// @Tags         parts-requests
// @Security     Bearer
// @Param        id  path  int  true  "ID de la solicitud"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/parts-requests/{id}/approve [post]
func (h *PartsRequestHandler) Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.orders.ApproveRequest(c.Context(), int64(id), GetUsername(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reject godoc
// @Summary      Rechazar una solicitud (solo admin)
// @Tags         parts-requests
// @Security     Bearer
// @Param        id  path  int  true  "ID de la solicitud"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/parts-requests/{id}/reject [post]
func (h *PartsRequestHandler) Reject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.orders.RejectRequest(c.Context(), int64(id), GetUsername(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
