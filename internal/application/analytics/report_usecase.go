// Package analytics contiene los casos de uso de lectura: historial de movimientos,
// stock actual, reporte mensual, dashboard y exportación de reportes.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain"
	ledger "github.com/jhoicas/stok-takip/internal/domain/inventory"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Uncategorized etiqueta mostrada para movimientos sin categoría.
const Uncategorized = "Sin categoría"

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName nombre en español del mes (1..12).
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// ReportUseCase genera los reportes derivados del libro de stock.
// Son consultas de solo lectura: mismos filtros sin escrituras intermedias => mismas filas y totales.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	threshold     int64
	now           func() time.Time
}

// NewReportUseCase construye el caso de uso. threshold es el umbral de stock bajo.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository, threshold int64) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo, threshold: threshold, now: time.Now}
}

// Threshold umbral de stock bajo configurado.
func (uc *ReportUseCase) Threshold() int64 { return uc.threshold }

// QueryMovements une entradas ("in") y salidas ("out") del rango indicado.
// Orden: fecha DESC; en la misma fecha entradas antes que salidas; luego id DESC.
func (uc *ReportUseCase) QueryMovements(ctx context.Context, q dto.MovementQuery) (*dto.MovementReportDTO, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	from, to, err := uc.movementRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	direction := q.Direction
	if direction == "" {
		direction = dto.DirectionAll
	}

	filter := repository.MovementFilter{
		From:     from,
		To:       to,
		Category: strings.TrimSpace(q.Category),
		Material: strings.TrimSpace(q.Material),
	}

	report := &dto.MovementReportDTO{
		From:        ledger.FormatDate(from),
		To:          ledger.FormatDate(to),
		Rows:        []dto.MovementDTO{},
		TotalInCost: decimal.Zero,
	}
	type sortable struct {
		row  dto.MovementDTO
		date time.Time
	}
	var rows []sortable

	if direction != dto.DirectionOut {
		entries, err := uc.analyticsRepo.ListEntryMovements(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("movimientos: entradas: %w", err)
		}
		for _, e := range entries {
			rows = append(rows, sortable{date: e.Date, row: dto.MovementDTO{
				ID:        e.ID,
				Date:      ledger.FormatDate(e.Date),
				Direction: dto.DirectionIn,
				Material:  e.Material,
				Quantity:  e.Quantity,
				UnitPrice: e.UnitPrice,
				Total:     e.Total,
				Supplier:  e.Supplier,
				Category:  categoryLabel(e.Category),
			}})
			report.TotalIn += e.Quantity
			report.TotalInCost = report.TotalInCost.Add(e.Total)
		}
	}
	if direction != dto.DirectionIn {
		exits, err := uc.analyticsRepo.ListExitMovements(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("movimientos: salidas: %w", err)
		}
		for _, x := range exits {
			rows = append(rows, sortable{date: x.Date, row: dto.MovementDTO{
				ID:        x.ID,
				Date:      ledger.FormatDate(x.Date),
				Direction: dto.DirectionOut,
				Material:  x.Material,
				Quantity:  x.Quantity,
				UnitPrice: x.UnitPrice,
				Total:     ledger.ExitCost(x.UnitPrice, x.Quantity),
				Personnel: x.Personnel,
				EntryID:   x.EntryID,
				Category:  categoryLabel(x.Category),
			}})
			report.TotalOut += x.Quantity
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.date.Equal(b.date) {
			return a.date.After(b.date)
		}
		if a.row.Direction != b.row.Direction {
			return a.row.Direction == dto.DirectionIn
		}
		return a.row.ID > b.row.ID
	})
	for _, r := range rows {
		report.Rows = append(report.Rows, r.row)
	}
	return report, nil
}

// movementRange resuelve el rango por defecto: primer día del mes actual .. hoy.
func (uc *ReportUseCase) movementRange(rawFrom, rawTo string) (time.Time, time.Time, error) {
	today := ledger.Day(uc.now())
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today
	var err error
	if s := strings.TrimSpace(rawFrom); s != "" {
		if from, err = ledger.ParseDate(s); err != nil {
			return time.Time{}, time.Time{}, domain.InvalidField("from")
		}
	}
	if s := strings.TrimSpace(rawTo); s != "" {
		if to, err = ledger.ParseDate(s); err != nil {
			return time.Time{}, time.Time{}, domain.InvalidField("to")
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, domain.InvalidField("to")
	}
	return from, to, nil
}

// QueryStock lista los materiales con total > 0 con el precio, proveedor y categoría de su última entrada.
func (uc *ReportUseCase) QueryStock(ctx context.Context, q dto.StockQuery) (*dto.StockReportDTO, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	status := q.Status
	if status == "" {
		status = dto.StockStatusAll
	}

	rows, err := uc.analyticsRepo.ListStock(ctx, repository.StockFilter{
		Category: strings.TrimSpace(q.Category),
		Material: strings.TrimSpace(q.Material),
	})
	if err != nil {
		return nil, fmt.Errorf("stock actual: %w", err)
	}

	report := &dto.StockReportDTO{
		Rows:       []dto.StockRowDTO{},
		TotalValue: decimal.Zero,
		Threshold:  uc.threshold,
	}
	for _, r := range rows {
		low := ledger.IsLowStock(r.Total, uc.threshold)
		if (status == dto.StockStatusLow && !low) || (status == dto.StockStatusNormal && low) {
			continue
		}
		value := r.UnitPrice.Mul(decimal.NewFromInt(r.Total))
		report.Rows = append(report.Rows, dto.StockRowDTO{
			Material:  r.Material,
			Quantity:  r.Total,
			UnitPrice: r.UnitPrice,
			Value:     value,
			Supplier:  r.Supplier,
			Category:  categoryLabel(r.Category),
			LastEntry: ledger.FormatDate(r.LastEntry),
			Low:       low,
		})
		report.TotalQuantity += r.Total
		report.TotalValue = report.TotalValue.Add(value)
		if low {
			report.LowCount++
		}
	}
	return report, nil
}

// QueryMonthly agrega los movimientos del año por mes de calendario.
func (uc *ReportUseCase) QueryMonthly(ctx context.Context, q dto.MonthlyQuery) (*dto.MonthlyReportDTO, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	year := q.Year
	if year == 0 {
		year = uc.now().Year()
	}
	from, to := ledger.YearRange(year)
	filter := repository.MovementFilter{
		From:     from,
		To:       to,
		Category: strings.TrimSpace(q.Category),
		Material: strings.TrimSpace(q.Material),
	}

	entries, err := uc.analyticsRepo.ListEntryMovements(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte mensual: entradas: %w", err)
	}
	exits, err := uc.analyticsRepo.ListExitMovements(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporte mensual: salidas: %w", err)
	}

	report := &dto.MonthlyReportDTO{
		Year:   year,
		Months: make([]dto.MonthlyRowDTO, 12),
		Total:  dto.MonthlyRowDTO{Label: "Total", InCost: decimal.Zero},
	}
	for i := range report.Months {
		report.Months[i] = dto.MonthlyRowDTO{
			Month:  i + 1,
			Label:  MonthName(time.Month(i + 1)),
			InCost: decimal.Zero,
		}
	}
	for _, e := range entries {
		m := &report.Months[e.Date.Month()-1]
		m.In += e.Quantity
		m.InCost = m.InCost.Add(e.Total)
	}
	for _, x := range exits {
		report.Months[x.Date.Month()-1].Out += x.Quantity
	}
	for i := range report.Months {
		m := &report.Months[i]
		m.Net = m.In - m.Out
		report.Total.In += m.In
		report.Total.Out += m.Out
		report.Total.InCost = report.Total.InCost.Add(m.InCost)
	}
	report.Total.Net = report.Total.In - report.Total.Out
	return report, nil
}

func categoryLabel(c string) string {
	if c == "" {
		return Uncategorized
	}
	return c
}
