package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas read-only para el resumen de estadísticas.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el repositorio.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// InventoryTotals: productos activos, suma de cantidades y cuántos están en low stock.
func (r *StatsRepo) InventoryTotals(ctx context.Context) (repository.InventoryTotals, error) {
	var t repository.InventoryTotals
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COUNT(*) FILTER (WHERE quantity <= min_quantity)
		FROM products
		WHERE is_active`).Scan(&t.TotalProducts, &t.TotalQuantity, &t.LowStockCount)
	if err != nil {
		return t, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}

// MovementCountsByType cuenta movimientos no revertidos desde since, por tipo.
func (r *StatsRepo) MovementCountsByType(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT operation_type, COUNT(*)
		FROM movements
		WHERE NOT is_undone AND occurred_at >= $1
		GROUP BY operation_type`, since)
	if err != nil {
		return nil, fmt.Errorf("movement counts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var (
			op string
			n  int
		)
		if err := rows.Scan(&op, &n); err != nil {
			return nil, fmt.Errorf("scan movement count: %w", err)
		}
		counts[op] = n
	}
	return counts, rows.Err()
}

// TopMovers agrupa por product_id; el nombre sale de la fila actual del producto.
func (r *StatsRepo) TopMovers(ctx context.Context, since time.Time, limit int) ([]repository.MoverResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT m.product_id, p.name, COUNT(*) AS movement_count
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE NOT m.is_undone AND m.occurred_at >= $1
		GROUP BY m.product_id, p.name
		ORDER BY movement_count DESC, m.product_id ASC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top movers: %w", err)
	}
	defer rows.Close()
	out := make([]repository.MoverResult, 0, limit)
	for rows.Next() {
		var m repository.MoverResult
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.Count); err != nil {
			return nil, fmt.Errorf("scan top mover: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
