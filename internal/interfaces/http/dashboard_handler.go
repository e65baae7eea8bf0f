package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/stok-takip/internal/application/analytics"
)

// DashboardHandler maneja el resumen del panel principal.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los cuatro indicadores del panel.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (total_quantity, low_stock_entries, total_cost,
// category_count, threshold). No requiere parámetros.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
