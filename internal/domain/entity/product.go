package entity

import "time"

// DefaultUnit unidad usada cuando la creación no indica una.
const DefaultUnit = "pcs"

// Product artículo de inventario con su cantidad actual.
// Los productos no se borran; IsActive=false los retira.
type Product struct {
	ID          int64
	Name        string
	SKU         string // único entre todos los productos
	Quantity    int    // nunca negativo tras una mutación confirmada
	MinQuantity int    // umbral de stock bajo
	Unit        string
	Category    *string
	Location    *string
	Notes       *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock se calcula en cada lectura, no se persiste.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinQuantity
}
