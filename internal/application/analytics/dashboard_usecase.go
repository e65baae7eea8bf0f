package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-takip/internal/application/dto"
	"github.com/jhoicas/stok-takip/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardUseCase genera los contadores del panel principal.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	threshold     int64
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, threshold int64) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, threshold: threshold}
}

// GetSummary ejecuta las cuatro consultas en paralelo:
//  1. SumPurchasedQuantity → TotalQuantity
//  2. CountEntriesBelow    → LowStockEntries (entradas, no materiales)
//  3. SumPurchaseCost      → TotalCost
//  4. CountCategories      → CategoryCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	out := &dto.DashboardSummaryDTO{Threshold: uc.threshold}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.analyticsRepo.SumPurchasedQuantity(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: cantidad total: %w", err)
		}
		out.TotalQuantity = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountEntriesBelow(ctx, uc.threshold)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		out.LowStockEntries = n
		return nil
	})
	g.Go(func() error {
		total, err := uc.analyticsRepo.SumPurchaseCost(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: costo total: %w", err)
		}
		out.TotalCost = total
		return nil
	})
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountCategories(ctx)
		if err != nil {
			return fmt.Errorf("dashboard: categorías: %w", err)
		}
		out.CategoryCount = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
