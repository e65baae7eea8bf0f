package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNumericParse      = errors.New("valor numérico inválido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStorage           = errors.New("error de almacenamiento")
	ErrUnsupported       = errors.New("operación no soportada por el almacenamiento configurado")

	// ErrNoSourceEntry: el material tiene stock pero no hay entrada con saldo para la selección FIFO.
	ErrNoSourceEntry = fmt.Errorf("%w: sin entrada de origen con saldo", ErrNotFound)
)

// FieldError identifica el campo de entrada que no pasó la validación.
// Err es ErrInvalidInput o ErrNumericParse.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %v (%q)", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// InvalidField construye un error de validación para field.
func InvalidField(field string) error {
	return &FieldError{Field: field, Err: ErrInvalidInput}
}

// NumericField construye un error de parseo numérico para field.
func NumericField(field, value string) error {
	return &FieldError{Field: field, Value: value, Err: ErrNumericParse}
}

// InsufficientStockError informa la cantidad realmente disponible.
type InsufficientStockError struct {
	Material  string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d", e.Material, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// StorageError envuelve un fallo del motor de almacenamiento.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Storage envuelve err como StorageError; nil si err es nil.
// Los errores que ya son de dominio (ErrNotFound, StorageError...) se devuelven tal cual.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDomain(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func isDomain(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidInput, ErrNumericParse, ErrInsufficientStock, ErrStorage, ErrUnsupported} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
