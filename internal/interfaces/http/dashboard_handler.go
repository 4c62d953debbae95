package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/usecase"
)

// DashboardHandler maneja el resumen operativo de la pantalla principal.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen operativo
// @Description  OTs por estado, solicitudes pendientes, stock bajo, alertas de
//               service, novedades activas, valor del pañol y agregados de
//               gasto y consumo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
