package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// Campos ordenables de productos.
const (
	ProductSortName        = "name"
	ProductSortSKU         = "sku"
	ProductSortQuantity    = "quantity"
	ProductSortMinQuantity = "minQuantity"
	ProductSortCategory    = "category"
	ProductSortCreatedAt   = "createdAt"
	ProductSortUpdatedAt   = "updatedAt"
)

// ProductFilter criterios de búsqueda de productos. Campos vacíos no filtran.
type ProductFilter struct {
	Search   string // contiene, en name o sku, sin distinguir mayúsculas
	Category string
	IsActive *bool
	LowStock bool // quantity <= min_quantity
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// UpdateDetails actualiza los campos descriptivos; no toca Quantity ni IsActive.
	UpdateDetails(ctx context.Context, product *entity.Product) error
	// SetQuantity solo lo usa el motor de stock, que ya validó el rango de qty.
	SetQuantity(ctx context.Context, id int64, qty int) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, filter ProductFilter, sort Sort, page Page) ([]*entity.Product, int, error)
}
