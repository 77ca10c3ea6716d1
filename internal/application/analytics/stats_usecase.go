// Package analytics contiene los casos de uso de estadísticas e informes de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

const (
	activityWindow = 30 * 24 * time.Hour
	topMoversLimit = 5
)

// StatsUseCase calcula el resumen de inventario y actividad. Se calcula en cada
// llamada; no hay caché.
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	now       func() time.Time
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(statsRepo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *StatsUseCase) WithClock(now func() time.Time) *StatsUseCase {
	uc.now = now
	return uc
}

// GetStats construye el StatsResponse.
//
// Tres consultas en paralelo:
//  1. InventoryTotals            → productos activos, cantidad total, low stock
//  2. MovementCountsByType(30d)  → actividad por tipo
//  3. TopMovers(30d, top 5)      → productos con más movimientos
func (uc *StatsUseCase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	since := uc.now().Add(-activityWindow)

	type totalsResult struct {
		totals repository.InventoryTotals
		err    error
	}
	type countsResult struct {
		counts map[string]int
		err    error
	}
	type moversResult struct {
		movers []repository.MoverResult
		err    error
	}

	totalsCh := make(chan totalsResult, 1)
	countsCh := make(chan countsResult, 1)
	moversCh := make(chan moversResult, 1)

	go func() {
		t, err := uc.statsRepo.InventoryTotals(ctx)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		c, err := uc.statsRepo.MovementCountsByType(ctx, since)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		m, err := uc.statsRepo.TopMovers(ctx, since, topMoversLimit)
		moversCh <- moversResult{m, err}
	}()

	totals := <-totalsCh
	counts := <-countsCh
	movers := <-moversCh

	if totals.err != nil {
		return nil, fmt.Errorf("stats: inventario: %w", totals.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("stats: actividad: %w", counts.err)
	}
	if movers.err != nil {
		return nil, fmt.Errorf("stats: top movers: %w", movers.err)
	}

	byType := counts.counts
	if byType == nil {
		byType = map[string]int{}
	}
	total := 0
	for _, n := range byType {
		total += n
	}

	top := make([]dto.TopMoverDTO, 0, len(movers.movers))
	for _, m := range movers.movers {
		top = append(top, dto.TopMoverDTO{ProductID: m.ProductID, ProductName: m.ProductName, Count: m.Count})
	}

	return &dto.StatsResponse{
		Inventory: dto.InventoryStats{
			TotalProducts: totals.totals.TotalProducts,
			TotalQuantity: totals.totals.TotalQuantity,
			LowStockCount: totals.totals.LowStockCount,
		},
		Activity: dto.ActivityStats{
			TotalMovements: total,
			ByType:         byType,
		},
		TopMovers: top,
		Since:     since,
	}, nil
}
