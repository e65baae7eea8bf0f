package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/stok-takip/internal/application/analytics"
	"github.com/jhoicas/stok-takip/internal/application/dto"
)

// AnalyticsHandler maneja los reportes (movimientos, stock, mensual) y su exportación.
type AnalyticsHandler struct {
	reports *appanalytics.ReportUseCase
	export  *appanalytics.ExportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(reports *appanalytics.ReportUseCase, export *appanalytics.ExportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{reports: reports, export: export}
}

func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: CodeValidation, Message: "parámetros de consulta inválidos",
	})
}

// GetMovements godoc
// @Summary      Historial de movimientos
// @Description  Entradas y salidas del período, más recientes primero, con totales.
// @Tags         reports
// @Produce      json
// @Param        from       query  string  false  "Inicio (dd.mm.aaaa). Default: primer día del mes."
// @Param        to         query  string  false  "Fin (dd.mm.aaaa). Default: hoy."
// @Param        category   query  string  false  "Categoría exacta"
// @Param        material   query  string  false  "Texto contenido en el nombre del material"
// @Param        direction  query  string  false  "all | in | out"
// @Success      200  {object}  dto.MovementReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *AnalyticsHandler) GetMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c)
	}
	report, err := h.reports.QueryMovements(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// GetStock godoc
// @Summary      Stock actual
// @Description  Materiales con existencias, precio y proveedor de la última entrada, y marca de stock bajo.
// @Tags         reports
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Param        material  query  string  false  "Texto contenido en el nombre del material"
// @Param        status    query  string  false  "all | low | normal"
// @Success      200  {object}  dto.StockReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *AnalyticsHandler) GetStock(c *fiber.Ctx) error {
	var q dto.StockQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c)
	}
	report, err := h.reports.QueryStock(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// GetMonthly godoc
// @Summary      Reporte mensual
// @Description  Entradas, salidas, neto y costo de compras por mes del año, más el total anual.
// @Tags         reports
// @Produce      json
// @Param        year      query  int     false  "Año. Default: año actual."
// @Param        category  query  string  false  "Categoría"
// @Param        material  query  string  false  "Texto contenido en el nombre del material"
// @Success      200  {object}  dto.MonthlyReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *AnalyticsHandler) GetMonthly(c *fiber.Ctx) error {
	var q dto.MonthlyQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c)
	}
	report, err := h.reports.QueryMonthly(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// Export godoc
// @Summary      Exportar reporte
// @Description  Genera el reporte como XLSX o PDF (stok_rapor_AAAAMMDD_HHMMSS). Con save=true se
//
//	guarda en el directorio de exportación y se devuelve la ruta.
//
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,application/pdf,json
// @Param        kind    path   string  true   "movements | stock | monthly"
// @Param        format  query  string  false  "xlsx (default) | pdf"
// @Param        save    query  bool    false  "Guardar en el servidor en lugar de descargar"
// @Success      200  {file}    binary
// @Success      201  {object}  dto.ExportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind}/export [get]
func (h *AnalyticsHandler) Export(c *fiber.Ctx) error {
	req := appanalytics.ExportRequest{Kind: c.Params("kind"), Format: c.Query("format")}
	var err error
	switch req.Kind {
	case appanalytics.ReportMovements:
		err = c.QueryParser(&req.Movements)
	case appanalytics.ReportStock:
		err = c.QueryParser(&req.Stock)
	case appanalytics.ReportMonthly:
		err = c.QueryParser(&req.Monthly)
	}
	if err != nil {
		return invalidParams(c)
	}

	if save, _ := strconv.ParseBool(c.Query("save")); save {
		path, file, err := h.export.SaveToDir(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.ExportResponse{Path: path, Rows: file.Rows})
	}

	file, err := h.export.Export(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Attachment(file.Name)
	return c.Send(file.Data)
}
