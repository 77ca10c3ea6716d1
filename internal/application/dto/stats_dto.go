package dto

import "time"

// StatsResponse respuesta de GET /api/stats.
type StatsResponse struct {
	Inventory InventoryStats `json:"inventory"`
	Activity  ActivityStats  `json:"activity"`
	TopMovers []TopMoverDTO  `json:"topMovers"`
	Since     time.Time      `json:"since"` // inicio de la ventana de actividad
}

// InventoryStats resumen de productos activos.
type InventoryStats struct {
	TotalProducts int `json:"totalProducts"`
	TotalQuantity int `json:"totalQuantity"`
	LowStockCount int `json:"lowStockCount"`
}

// ActivityStats movimientos no revertidos en la ventana, por tipo.
type ActivityStats struct {
	TotalMovements int            `json:"totalMovements"`
	ByType         map[string]int `json:"byType"`
}

// TopMoverDTO producto con más movimientos en la ventana.
type TopMoverDTO struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Count       int    `json:"count"`
}
