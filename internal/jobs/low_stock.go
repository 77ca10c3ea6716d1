package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// LowStockJobName nombre del job en el scheduler.
const LowStockJobName = "low-stock-check"

// LowStockJob revisa la lista de reposición y deja en el log un aviso por producto.
type LowStockJob struct {
	lister ReplenishmentLister
	log    *logger.Logger
	now    func() time.Time

	mu      sync.RWMutex
	last    []dto.ReplenishmentSuggestionDTO
	lastRun time.Time
}

// NewLowStockJob construye el job.
func NewLowStockJob(lister ReplenishmentLister, log *logger.Logger) *LowStockJob {
	if log == nil {
		log = logger.Nop()
	}
	return &LowStockJob{lister: lister, log: log, now: time.Now}
}

// Run ejecuta un chequeo.
func (j *LowStockJob) Run(ctx context.Context) error {
	list, err := j.lister.GenerateReplenishmentList(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		j.log.Warn().
			Int64("product_id", s.ProductID).
			Str("sku", s.SKU).
			Int("quantity", s.CurrentStock).
			Int("min_quantity", s.MinQuantity).
			Int("suggested_order", s.SuggestedOrderQty).
			Int("priority", s.Priority).
			Msg("low stock")
	}
	j.log.Info().Int("low_stock", len(list)).Msg("jobs: low-stock check completado")

	j.mu.Lock()
	j.last = list
	j.lastRun = j.now()
	j.mu.Unlock()
	return nil
}

// Last resultado del último chequeo y cuándo corrió. Zero time si nunca corrió.
func (j *LowStockJob) Last() ([]dto.ReplenishmentSuggestionDTO, time.Time) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.last, j.lastRun
}
