package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-core/internal/application/dto"
	"github.com/tu-usuario/stock-core/internal/application/stock"
	"github.com/tu-usuario/stock-core/internal/domain"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del motor de stock (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// respondEntry responde la entrada mutada. Si la mutación quedó confirmada
// pero la auditoría no pudo persistirse, la respuesta sigue siendo de éxito
// con audit_pending marcado: el ledger manda.
func respondEntry(c *fiber.Ctx, status int, entry *entity.StockEntry, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrAuditPending) && entry != nil {
			resp := dto.FromStockEntry(entry)
			resp.AuditPending = true
			return c.Status(status).JSON(resp)
		}
		return respondError(c, err)
	}
	return c.Status(status).JSON(dto.FromStockEntry(entry))
}

// CreateEntry godoc
// @Summary      Dar de alta un producto en un inventario
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Param        body  body  dto.CreateStockEntryRequest  true  "product_id, quantity, min_stock_quantity"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{inventoryId}/stock [post]
func (h *StockHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateStockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.CreateEntry(c.Context(), stock.CreateEntryInput{
		InventoryID:      c.Params("inventoryId"),
		ProductID:        in.ProductID,
		Quantity:         in.Quantity,
		MinStockQuantity: in.MinStockQuantity,
		Actor:            actorFromCtx(c),
	})
	return respondEntry(c, fiber.StatusCreated, entry, err)
}

// GetEntry godoc
// @Summary      Consultar la entrada de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Param        productId    path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{inventoryId}/stock/{productId} [get]
func (h *StockHandler) GetEntry(c *fiber.Ctx) error {
	entry, err := h.uc.GetEntry(c.Context(), c.Params("inventoryId"), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockEntry(entry))
}

// ListByInventory godoc
// @Summary      Listar las entradas de stock de un inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Success      200  {array}  dto.StockEntryResponse
// @Router       /api/inventories/{inventoryId}/stock [get]
func (h *StockHandler) ListByInventory(c *fiber.Ctx) error {
	entries, err := h.uc.ListByInventory(c.Context(), c.Params("inventoryId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromStockEntry(e))
	}
	return c.JSON(out)
}

// IncreaseQuantity godoc
// @Summary      Aumentar la cantidad de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Param        productId    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustQuantityRequest  true  "delta > 0"
// @Success      200   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventories/{inventoryId}/stock/{productId}/increase [post]
func (h *StockHandler) IncreaseQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.IncreaseQuantity(c.Context(), c.Params("inventoryId"), c.Params("productId"), in.Delta, actorFromCtx(c))
	return respondEntry(c, fiber.StatusOK, entry, err)
}

// DecreaseQuantity godoc
// @Summary      Disminuir la cantidad de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Param        productId    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustQuantityRequest  true  "delta > 0; no puede dejar la cantidad negativa"
// @Success      200   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{inventoryId}/stock/{productId}/decrease [post]
func (h *StockHandler) DecreaseQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.DecreaseQuantity(c.Context(), c.Params("inventoryId"), c.Params("productId"), in.Delta, actorFromCtx(c))
	return respondEntry(c, fiber.StatusOK, entry, err)
}

// SetQuantity godoc
// @Summary      Sobrescribir la cantidad de stock con un valor absoluto
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Param        productId    path  string  true  "ID del producto"
// @Param        body  body  dto.SetQuantityRequest  true  "quantity >= 0"
// @Success      200   {object}  dto.StockEntryResponse
// @Router       /api/inventories/{inventoryId}/stock/{productId} [put]
func (h *StockHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.SetQuantity(c.Context(), c.Params("inventoryId"), c.Params("productId"), in.Quantity, actorFromCtx(c))
	return respondEntry(c, fiber.StatusOK, entry, err)
}

// SetMinStock godoc
// @Summary      Actualizar el umbral mínimo de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Param        productId    path  string  true  "ID del producto"
// @Param        body  body  dto.SetMinStockRequest  true  "min_stock_quantity >= 0"
// @Success      200   {object}  dto.StockEntryResponse
// @Router       /api/inventories/{inventoryId}/stock/{productId}/min-stock [put]
func (h *StockHandler) SetMinStock(c *fiber.Ctx) error {
	var in dto.SetMinStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.UpdateMinStockThreshold(c.Context(), c.Params("inventoryId"), c.Params("productId"), in.MinStockQuantity, actorFromCtx(c))
	return respondEntry(c, fiber.StatusOK, entry, err)
}

// RemoveEntry godoc
// @Summary      Eliminar la entrada de stock de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        inventoryId  path  string  true  "ID del inventario"
// @Param        productId    path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{inventoryId}/stock/{productId} [delete]
func (h *StockHandler) RemoveEntry(c *fiber.Ctx) error {
	entry, err := h.uc.RemoveEntry(c.Context(), c.Params("inventoryId"), c.Params("productId"), actorFromCtx(c))
	return respondEntry(c, fiber.StatusOK, entry, err)
}
