package repository

import "math"

// Page paginación 1-based para listados.
type Page struct {
	Number int // 1-based
	Limit  int
}

// Offset devuelve cuántas filas saltar. Nunca es negativo: si el producto
// desborda se satura en math.MaxInt (página vacía).
func (p Page) Offset() int {
	if p.Number < 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// Sort orden de un listado. Field ya viene validado contra la lista blanca del repositorio.
type Sort struct {
	Field string
	Desc  bool
}
