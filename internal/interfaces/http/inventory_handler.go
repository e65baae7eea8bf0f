package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/application/inventory"
)

// InventoryHandler maneja el registro de entradas y salidas de material.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RecordEntry godoc
// @Summary      Registrar entrada de material
// @Description  Calcula el total con IVA y suma la cantidad al stock del material.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordEntryRequest  true  "material, unit_price, quantity, tax_rate (%), date (dd.mm.aaaa)"
// @Success      201   {object}  dto.RecordEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *InventoryHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.RecordEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordEntry(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordExit godoc
// @Summary      Registrar salida de material
// @Description  Toma como origen la entrada más antigua del material (FIFO) y descuenta el stock.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordExitRequest  true  "material, personnel, quantity, date (dd.mm.aaaa)"
// @Success      201   {object}  dto.RecordExitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/exits [post]
func (h *InventoryHandler) RecordExit(c *fiber.Ctx) error {
	var in dto.RecordExitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordExit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
