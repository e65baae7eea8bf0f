package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	"github.com/jhoicas/stok-takip/internal/domain/entity"
	ledger "github.com/jhoicas/stok-takip/internal/domain/inventory"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/jhoicas/stok-takip/pkg/logger"
	"github.com/shopspring/decimal"
)

// LedgerUseCase registra entradas y salidas de material de forma transaccional:
// cada movimiento y la actualización del total corriente se confirman juntos o no se aplican.
type LedgerUseCase struct {
	txRunner       TxRunner
	defaultTaxRate decimal.Decimal // porcentaje
	log            *logger.Logger
}

// NewLedgerUseCase construye el caso de uso. defaultTaxRate es el porcentaje usado cuando la entrada no trae tasa.
func NewLedgerUseCase(txRunner TxRunner, defaultTaxRate decimal.Decimal, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:       txRunner,
		defaultTaxRate: defaultTaxRate,
		log:            log.Component("ledger"),
	}
}

// RecordEntry valida la compra, calcula Total = precio * cantidad * (1 + impuesto/100),
// inserta la entrada y suma la cantidad al stock del material en la misma transacción.
func (uc *LedgerUseCase) RecordEntry(ctx context.Context, in dto.RecordEntryRequest) (*dto.RecordEntryResponse, error) {
	in.Material = strings.TrimSpace(in.Material)
	in.UnitPrice = strings.TrimSpace(in.UnitPrice)
	in.Quantity = strings.TrimSpace(in.Quantity)
	in.TaxRate = strings.TrimSpace(in.TaxRate)
	in.Date = strings.TrimSpace(in.Date)
	in.Category = strings.TrimSpace(in.Category)
	in.Supplier = strings.TrimSpace(in.Supplier)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	price, err := parseAmount("unit_price", in.UnitPrice)
	if err != nil {
		return nil, err
	}
	qty, err := parseQuantity("quantity", in.Quantity, false)
	if err != nil {
		return nil, err
	}
	percent := uc.defaultTaxRate
	if in.TaxRate != "" {
		if percent, err = parseAmount("tax_rate", in.TaxRate); err != nil {
			return nil, err
		}
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	tax := ledger.TaxFraction(percent)
	entry := &entity.Entry{
		Material:  in.Material,
		UnitPrice: price,
		Quantity:  qty,
		TaxRate:   tax,
		Total:     ledger.EntryTotal(price, qty, tax),
		Date:      date,
		Category:  in.Category,
		Supplier:  in.Supplier,
	}

	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.EntryRepository,
		_ repository.ExitRepository,
		stockRepo repository.StockRepository,
	) error {
		current, err := stockRepo.Get(ctx, entry.Material)
		if err != nil {
			return err
		}
		// el total corriente debe seguir siendo un int64 en cualquier backend
		if current != nil && entry.Quantity > math.MaxInt64-current.Total {
			return domain.InvalidField("quantity")
		}
		if err := entryRepo.Create(ctx, entry); err != nil {
			return err
		}
		return stockRepo.Increase(ctx, entry.Material, entry.Quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("registrar entrada: %w", err)
	}

	uc.log.Info().
		Int64("entry_id", entry.ID).
		Str("material", entry.Material).
		Int64("quantity", entry.Quantity).
		Str("total", entry.Total.StringFixed(2)).
		Msg("entrada registrada")
	return &dto.RecordEntryResponse{ID: entry.ID, Total: entry.Total}, nil
}

// RecordExit registra una salida contra la entrada más antigua con saldo del material (FIFO).
// La salida se registra completa contra esa entrada (sin tope por el saldo de la entrada y sin
// descontarla) y el total corriente del material se reduce en la cantidad pedida.
func (uc *LedgerUseCase) RecordExit(ctx context.Context, in dto.RecordExitRequest) (*dto.RecordExitResponse, error) {
	in.Material = strings.TrimSpace(in.Material)
	in.Personnel = strings.TrimSpace(in.Personnel)
	in.Quantity = strings.TrimSpace(in.Quantity)
	in.Date = strings.TrimSpace(in.Date)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	qty, err := parseQuantity("quantity", in.Quantity, true)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}

	exit := &entity.Exit{
		Material:  in.Material,
		Quantity:  qty,
		Personnel: in.Personnel,
		Date:      date,
	}
	var remaining int64

	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.EntryRepository,
		exitRepo repository.ExitRepository,
		stockRepo repository.StockRepository,
	) error {
		stock, err := stockRepo.Get(ctx, in.Material)
		if err != nil {
			return err
		}
		if stock == nil {
			return fmt.Errorf("%w: material %q sin stock", domain.ErrNotFound, in.Material)
		}
		if qty > stock.Total {
			return &domain.InsufficientStockError{Material: in.Material, Requested: qty, Available: stock.Total}
		}

		source, err := entryRepo.OldestWithBalance(ctx, in.Material)
		if err != nil {
			return err
		}
		if source == nil {
			return fmt.Errorf("%w: %q", domain.ErrNoSourceEntry, in.Material)
		}

		exit.EntryID = source.ID
		if err := exitRepo.Create(ctx, exit); err != nil {
			return err
		}
		if err := stockRepo.Decrease(ctx, in.Material, qty); err != nil {
			return err
		}
		remaining = stock.Total - qty
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("registrar salida: %w", err)
	}

	uc.log.Info().
		Int64("exit_id", exit.ID).
		Int64("entry_id", exit.EntryID).
		Str("material", exit.Material).
		Int64("quantity", exit.Quantity).
		Int64("remaining", remaining).
		Msg("salida registrada")
	return &dto.RecordExitResponse{
		ID:        exit.ID,
		EntryID:   exit.EntryID,
		Material:  exit.Material,
		Quantity:  exit.Quantity,
		Remaining: remaining,
	}, nil
}
