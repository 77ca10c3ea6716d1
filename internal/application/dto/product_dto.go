package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	SKU         string  `json:"sku" validate:"required,min=1,max=100"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	Unit        string  `json:"unit"`
	MinQuantity int     `json:"minQuantity" validate:"min=0"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
}

// UpdateProductRequest entrada para actualizar un producto (sin quantity: el stock solo cambia vía movimientos).
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string `json:"sku" validate:"omitempty,min=1,max=100"`
	Unit        *string `json:"unit"`
	MinQuantity *int    `json:"minQuantity" validate:"omitempty,min=0"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Notes       *string `json:"notes"`
}

// StockChangeRequest body de take (quantity > 0) y adjust (quantity con signo).
type StockChangeRequest struct {
	Quantity *int    `json:"quantity" validate:"required"`
	Details  *string `json:"details"`
}

// SetActiveRequest body de PATCH /api/products/:id/activate.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search   string `query:"search"`
	Category string `query:"category"`
	IsActive string `query:"isActive"` // "true" | "false" | vacío
	LowStock bool   `query:"lowStock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	MinQuantity int       `json:"minQuantity"`
	Category    *string   `json:"category"`
	Location    *string   `json:"location"`
	Notes       *string   `json:"notes"`
	IsActive    bool      `json:"isActive"`
	IsLowStock  bool      `json:"isLowStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StockChangeResponse producto actualizado junto con el movimiento generado.
type StockChangeResponse struct {
	Product  ProductResponse   `json:"product"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// ReplenishmentSuggestionDTO producto en low stock con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	ProductID         int64  `json:"productId"`
	SKU               string `json:"sku"`
	ProductName       string `json:"productName"`
	Unit              string `json:"unit"`
	CurrentStock      int    `json:"currentStock"`
	MinQuantity       int    `json:"minQuantity"`
	IdealStock        int    `json:"idealStock"`        // ceil(minQuantity * 1.5)
	SuggestedOrderQty int    `json:"suggestedOrderQty"` // idealStock - currentStock
	Priority          int    `json:"priority"`          // 1 = más urgente
}
