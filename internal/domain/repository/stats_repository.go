package repository

import (
	"context"
	"time"
)

// InventoryTotals resultado crudo del resumen de inventario (solo productos activos).
type InventoryTotals struct {
	TotalProducts int
	TotalQuantity int
	LowStockCount int
}

// MoverResult producto con su número de movimientos en la ventana.
type MoverResult struct {
	ProductID   int64
	ProductName string
	Count       int
}

// StatsRepository define las consultas de lectura para estadísticas.
// Las implementaciones son read-only (no modifican datos).
type StatsRepository interface {
	InventoryTotals(ctx context.Context) (InventoryTotals, error)

	// MovementCountsByType cuenta movimientos no revertidos desde since, por tipo.
	MovementCountsByType(ctx context.Context, since time.Time) (map[string]int, error)

	// TopMovers devuelve los limit productos con más movimientos no revertidos desde since,
	// ordenados por cantidad desc y product_id asc.
	TopMovers(ctx context.Context, since time.Time, limit int) ([]MoverResult, error)
}
