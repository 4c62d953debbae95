package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/application/usecase"
)

// NoticeHandler maneja las novedades de los móviles.
type NoticeHandler struct {
	uc    *usecase.NoticeUseCase
	fleet *fleet.UseCase
}

// NewNoticeHandler construye el handler.
func NewNoticeHandler(uc *usecase.NoticeUseCase, fleetUC *fleet.UseCase) *NoticeHandler {
	return &NoticeHandler{uc: uc, fleet: fleetUC}
}

// Create godoc
// @Summary      Reportar novedad sobre un móvil
// @Tags         notices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoticeRequest  true  "Móvil y descripción"
// @Success      201   {object}  dto.NoticeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notices [post]
func (h *NoticeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNoticeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	n, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(noticeToDTO(n, h.vehicleName(c, n.VehicleID)))
}

// ListActive godoc
// @Summary      Novedades activas
// @Tags         notices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NoticeResponse
// @Router       /api/notices [get]
func (h *NoticeHandler) ListActive(c *fiber.Ctx) error {
	notices, err := h.uc.ListActive(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		out = append(out, noticeToDTO(n, h.vehicleName(c, n.VehicleID)))
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar una novedad
// @Tags         notices
// @Security     Bearer
// @Param        id  path  int  true  "ID de la novedad"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/notices/{id}/archive [post]
func (h *NoticeHandler) Archive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Archive(c.Context(), int64(id)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Promote godoc
// @Summary      Promover novedad a OT
// @Description  Crea una OT con la descripción de la novedad como tarea y
//               archiva la novedad.
// @Tags         notices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la novedad"
// @Param        body  body  dto.PromoteNoticeRequest  true  "Rubro y responsable de la OT"
// @Success      201   {object}  dto.IDResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/notices/{id}/promote [post]
func (h *NoticeHandler) Promote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.PromoteNoticeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Promote(c.Context(), int64(id), actorFromCtx(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: order.ID})
}

func (h *NoticeHandler) vehicleName(c *fiber.Ctx, id int64) string {
	v, err := h.fleet.GetVehicle(c.Context(), id)
	if err != nil {
		return ""
	}
	return v.Name
}
