package dto

import (
	"errors"
	"testing"

	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ReportsJSONFieldName(t *testing.T) {
	err := Validate(RecordExitRequest{Material: "Bolt", Quantity: "3", Date: "02.01.2024"})
	require.Error(t, err)

	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "personnel", fe.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_QueryEnums(t *testing.T) {
	assert.NoError(t, Validate(MovementQuery{Direction: "in"}))
	assert.NoError(t, Validate(MovementQuery{}))

	err := Validate(StockQuery{Status: "roto"})
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "status", fe.Field)
}
