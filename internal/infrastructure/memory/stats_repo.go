package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// StatsRepo consultas de estadísticas sobre el estado en memoria.
type StatsRepo struct {
	v view
}

func (r *StatsRepo) InventoryTotals(_ context.Context) (repository.InventoryTotals, error) {
	var t repository.InventoryTotals
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			if !p.IsActive {
				continue
			}
			t.TotalProducts++
			t.TotalQuantity += p.Quantity
			if p.IsLowStock() {
				t.LowStockCount++
			}
		}
		return nil
	})
	return t, err
}

func (r *StatsRepo) MovementCountsByType(_ context.Context, since time.Time) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.v.do(func(st *state) error {
		for _, m := range st.movements {
			if m.IsUndone || m.Timestamp.Before(since) {
				continue
			}
			counts[string(m.OperationType)]++
		}
		return nil
	})
	return counts, err
}

func (r *StatsRepo) TopMovers(_ context.Context, since time.Time, limit int) ([]repository.MoverResult, error) {
	byProduct := make(map[int64]int)
	names := make(map[int64]string)
	err := r.v.do(func(st *state) error {
		for _, m := range st.movements {
			if m.IsUndone || m.Timestamp.Before(since) {
				continue
			}
			p, ok := st.products[m.ProductID]
			if !ok {
				continue
			}
			byProduct[m.ProductID]++
			names[m.ProductID] = p.Name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]repository.MoverResult, 0, len(byProduct))
	for id, n := range byProduct {
		out = append(out, repository.MoverResult{ProductID: id, ProductName: names[id], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
