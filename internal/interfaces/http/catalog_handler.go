package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/application/usecase"
)

// CatalogHandler categorías, autocompletado y consulta de stock por material.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// pathParam devuelve el parámetro de ruta decodificado (nombres con espacios o acentos).
func pathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.ListResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	items, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse{Items: items})
}

// AddCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CategoryRequest  true  "name"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) AddCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.AddCategory(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "categoría creada"})
}

// RemoveCategory godoc
// @Summary      Eliminar categoría
// @Description  Las entradas que la usaban quedan sin categoría.
// @Tags         catalog
// @Produce      json
// @Param        name  path      string  true  "Nombre de la categoría"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{name} [delete]
func (h *CatalogHandler) RemoveCategory(c *fiber.Ctx) error {
	if err := h.uc.RemoveCategory(c.UserContext(), pathParam(c, "name")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

// Materials godoc
// @Summary      Autocompletar materiales
// @Tags         catalog
// @Produce      json
// @Param        q  query     string  false  "Texto contenido en el nombre"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/materials [get]
func (h *CatalogHandler) Materials(c *fiber.Ctx) error {
	items, err := h.uc.Materials(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse{Items: items})
}

// Suppliers godoc
// @Summary      Autocompletar proveedores
// @Tags         catalog
// @Produce      json
// @Param        q  query     string  false  "Texto contenido en el nombre"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/suppliers [get]
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	items, err := h.uc.Suppliers(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ListResponse{Items: items})
}

// AvailableStock godoc
// @Summary      Materiales con stock disponible
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.StockLevelDTO
// @Router       /api/stock [get]
func (h *CatalogHandler) AvailableStock(c *fiber.Ctx) error {
	list, err := h.uc.AvailableStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// StockOf godoc
// @Summary      Stock de un material
// @Tags         catalog
// @Produce      json
// @Param        material  path      string  true  "Nombre exacto del material"
// @Success      200       {object}  dto.StockLevelDTO
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/stock/{material} [get]
func (h *CatalogHandler) StockOf(c *fiber.Ctx) error {
	level, err := h.uc.StockOf(c.UserContext(), pathParam(c, "material"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(level)
}
