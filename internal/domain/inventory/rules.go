// Package inventory contiene las reglas puras del motor de stock: dado el estado
// actual (ya bloqueado por la transacción) calcula la transición de cantidad o
// rechaza la operación. No hace I/O.
package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// Transition cambio de cantidad que produce una operación. New = Old + Change.
type Transition struct {
	Old    int
	New    int
	Change int
}

// MaxQuantity tope de quantity, minQuantity y de cualquier delta: las columnas son INTEGER.
const MaxQuantity = math.MaxInt32

func transition(old, change int) Transition {
	return Transition{Old: old, New: old + change, Change: change}
}

// inRange verifica que |v| <= MaxQuantity. Con ambos operandos acotados la suma
// old + change no desborda int.
func inRange(v int) bool {
	return v >= -MaxQuantity && v <= MaxQuantity
}

// ValidateMinQuantity minQuantity en [0, MaxQuantity].
func ValidateMinQuantity(minQty int) error {
	if minQty < 0 {
		return domain.InvalidInput("minQuantity cannot be negative")
	}
	if minQty > MaxQuantity {
		return domain.InvalidInput(fmt.Sprintf("minQuantity cannot exceed %d", MaxQuantity))
	}
	return nil
}

// Initial stock inicial al crear un producto (movimiento add desde 0).
func Initial(qty int) (Transition, error) {
	if qty < 0 {
		return Transition{}, domain.InvalidInput("quantity cannot be negative")
	}
	if qty > MaxQuantity {
		return Transition{}, domain.InvalidInput(fmt.Sprintf("quantity cannot exceed %d", MaxQuantity))
	}
	return transition(0, qty), nil
}

// Take valida una salida de stock.
func Take(p *entity.Product, amount int) (Transition, error) {
	if amount <= 0 {
		return Transition{}, domain.InvalidInput("quantity must be a positive number")
	}
	if amount > MaxQuantity {
		return Transition{}, domain.InvalidInput(fmt.Sprintf("quantity cannot exceed %d", MaxQuantity))
	}
	if !p.IsActive {
		return Transition{}, domain.Conflict("cannot take from inactive product")
	}
	if amount > p.Quantity {
		return Transition{}, domain.Conflict("cannot take more than available stock")
	}
	return transition(p.Quantity, -amount), nil
}

// Adjust aplica un delta con signo; el resultado queda en [0, MaxQuantity].
func Adjust(p *entity.Product, delta int) (Transition, error) {
	if !inRange(delta) {
		return Transition{}, domain.InvalidInput(fmt.Sprintf("adjustment must be between -%d and %d", MaxQuantity, MaxQuantity))
	}
	t := transition(p.Quantity, delta)
	if t.New < 0 {
		return Transition{}, domain.Conflict("adjustment would result in negative stock")
	}
	if t.New > MaxQuantity {
		return Transition{}, domain.Conflict(fmt.Sprintf("adjustment would exceed the maximum stock of %d", MaxQuantity))
	}
	return t, nil
}

// Edit cambio de datos sin efecto en la cantidad.
func Edit(p *entity.Product) Transition {
	return transition(p.Quantity, 0)
}

// Undo revierte target contra la cantidad ACTUAL del producto, no contra la
// instantánea guardada en el movimiento original.
func Undo(p *entity.Product, target *entity.Movement) (Transition, error) {
	if target.IsUndone {
		return Transition{}, domain.Conflict("this movement has already been undone")
	}
	if !target.OperationType.Reversible() {
		return Transition{}, domain.Conflict("cannot undo this type of operation")
	}
	if target.ProductID != p.ID {
		return Transition{}, domain.Conflict("movement does not belong to this product")
	}
	if !inRange(target.QuantityChange) {
		return Transition{}, domain.Conflict("cannot undo: movement change is out of range")
	}
	t := transition(p.Quantity, -target.QuantityChange)
	if t.New < 0 {
		return Transition{}, domain.Conflict(fmt.Sprintf(
			"cannot undo: would result in negative stock (current: %d, change: %d)", t.Old, t.Change))
	}
	if t.New > MaxQuantity {
		return Transition{}, domain.Conflict(fmt.Sprintf(
			"cannot undo: would exceed the maximum stock of %d (current: %d, change: %d)", MaxQuantity, t.Old, t.Change))
	}
	return t, nil
}
