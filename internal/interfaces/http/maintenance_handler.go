package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/application/maintenance"
)

// MaintenanceHandler copias de seguridad, restauración y borrado de datos.
type MaintenanceHandler struct {
	uc *maintenance.UseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.UseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Backup godoc
// @Summary      Crear copia de seguridad
// @Tags         maintenance
// @Produce      json
// @Success      201  {object}  dto.BackupResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/maintenance/backup [post]
func (h *MaintenanceHandler) Backup(c *fiber.Ctx) error {
	res, err := h.uc.Backup(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Restore godoc
// @Summary      Restaurar copia de seguridad
// @Description  Reemplaza la base de datos con el archivo subido (campo multipart "file").
// @Tags         maintenance
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .db"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      501   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/maintenance/restore [post]
func (h *MaintenanceHandler) Restore(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeValidation, Message: "falta el archivo", Field: "file",
		})
	}
	f, err := fh.Open()
	if err != nil {
		return invalidBody(c)
	}
	defer f.Close()

	if err := h.uc.RestoreFrom(c.UserContext(), f); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "base de datos restaurada"})
}

// Wipe godoc
// @Summary      Borrar todos los datos
// @Tags         maintenance
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/maintenance/data [delete]
func (h *MaintenanceHandler) Wipe(c *fiber.Ctx) error {
	if err := h.uc.Wipe(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "datos borrados"})
}
