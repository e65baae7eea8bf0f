package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldError_Unwraps(t *testing.T) {
	err := fmt.Errorf("registrar entrada: %w", NumericField("quantity", "abc"))

	var fe *FieldError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "quantity", fe.Field)
	assert.ErrorIs(t, err, ErrNumericParse)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestInsufficientStockError_Is(t *testing.T) {
	err := error(&InsufficientStockError{Material: "Bolt", Requested: 1000, Available: 70})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible 70")
}

func TestNoSourceEntry_IsNotFound(t *testing.T) {
	assert.ErrorIs(t, fmt.Errorf("%w: Bolt", ErrNoSourceEntry), ErrNotFound)
}

func TestStorage(t *testing.T) {
	assert.NoError(t, Storage("op", nil))

	raw := errors.New("disk I/O error")
	err := Storage("create entry", raw)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, raw)
	assert.Equal(t, "create entry: disk I/O error", err.Error())

	// no se re-envuelven errores de dominio
	nf := fmt.Errorf("%w: x", ErrNotFound)
	assert.Same(t, nf, Storage("get", nf))
}
