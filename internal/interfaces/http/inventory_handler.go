package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/inventory"
)

// InventoryHandler maneja el pañol: artículos, entradas, salidas y kardex.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de artículo
// @Description  Una cantidad inicial mayor a cero asienta un movimiento
//               CREACION en el kardex.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), GetUsername(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stockItemToDTO(item))
}

// List godoc
// @Summary      Listar o buscar artículos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Buscar por nombre, código o rubro"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context(), c.Query("q"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, stockItemToDTO(it))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Artículos en o bajo su mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock/low [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStockItems(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, stockItemToDTO(it))
	}
	return c.JSON(out)
}

// Valuation godoc
// @Summary      Valorización del pañol
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockValuationDTO
// @Router       /api/stock/valuation [get]
func (h *InventoryHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del artículo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	item, err := h.uc.GetItem(c.Context(), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(stockItemToDTO(item))
}

// Update godoc
// @Summary      Actualizar datos del artículo (no la cantidad)
// @Description  La cantidad solo se mueve por entradas, salidas y
//               aprobaciones, que dejan asiento en el kardex.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del artículo"
// @Param        body  body  dto.CreateStockItemRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), int64(id), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(stockItemToDTO(item))
}

// Delete godoc
// @Summary      Baja de artículo en dos pasos (solo admin)
// @Description  El kardex del artículo se conserva con la referencia en nulo.
// @Tags         stock
// @Security     Bearer
// @Param        id       path   int   true   "ID del artículo"
// @Param        confirm  query  bool  false  "Confirmación de la baja"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.DeleteItem(c.Context(), int64(id), c.QueryBool("confirm")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Entry godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del artículo"
// @Param        body  body  dto.StockEntryRequest  true  "Cantidad, precio, proveedor, remito"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/entries [post]
func (h *InventoryHandler) Entry(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.RegisterEntry(c.Context(), int64(id), GetUsername(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(stockItemToDTO(item))
}

// Exit godoc
// @Summary      Registrar salida de stock
// @Description  El destino es un móvil (vehiculo_id) o un destino interno en
//               texto libre. Stock insuficiente devuelve 409 sin tocar nada.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del artículo"
// @Param        body  body  dto.StockExitRequest  true  "Cantidad, destino, responsable"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/exits [post]
func (h *InventoryHandler) Exit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.StockExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.RegisterExit(c.Context(), int64(id), GetUsername(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(stockItemToDTO(item))
}

// Kardex godoc
// @Summary      Kardex del artículo
// @Description  Asientos inmutables de entradas y salidas, del más reciente
//               al más antiguo.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id     path   int  true   "ID del artículo"
// @Param        limit  query  int  false  "Límite"  default(100)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/{id}/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	itemName := ""
	if item, ierr := h.uc.GetItem(c.Context(), int64(id)); ierr == nil {
		itemName = item.Name
	}
	movements, err := h.uc.Kardex(c.Context(), int64(id), c.QueryInt("limit", 0))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementToDTO(m, itemName))
	}
	return c.JSON(out)
}
