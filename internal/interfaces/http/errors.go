package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
)

// Códigos de error de la API.
const (
	CodeValidation        = "VALIDATION"
	CodeNumeric           = "NUMERIC"
	CodeInvalidBody       = "INVALID_BODY"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnsupported       = "UNSUPPORTED"
	CodeStorage           = "STORAGE"
	CodeInternal          = "INTERNAL"
)

// writeError traduce un error de dominio a status + ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		fe  *domain.FieldError
		ise *domain.InsufficientStockError
	)
	field := ""
	if errors.As(err, &fe) {
		field = fe.Field
	}

	switch {
	case errors.Is(err, domain.ErrNumericParse):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeNumeric, Message: err.Error(), Field: field}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error(), Field: field}
	case errors.As(err, &ise):
		available := ise.Available
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeInsufficientStock, Message: err.Error(), Available: &available}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrUnsupported):
		return fiber.StatusNotImplemented, dto.ErrorResponse{Code: CodeUnsupported, Message: err.Error()}
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeStorage, Message: "error de almacenamiento"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno"}
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
