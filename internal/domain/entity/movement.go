package entity

import "time"

// OperationType tipo de operación registrada en el ledger de movimientos.
type OperationType string

const (
	OperationAdd    OperationType = "add"    // stock inicial al crear el producto
	OperationTake   OperationType = "take"   // salida
	OperationAdjust OperationType = "adjust" // ajuste con signo
	OperationEdit   OperationType = "edit"   // cambio de datos, sin cantidad
	OperationUndo   OperationType = "undo"   // reverso de otro movimiento
)

// Valid indica si t es un tipo de operación conocido.
func (t OperationType) Valid() bool {
	switch t {
	case OperationAdd, OperationTake, OperationAdjust, OperationEdit, OperationUndo:
		return true
	}
	return false
}

// Reversible indica si un movimiento de este tipo se puede revertir.
func (t OperationType) Reversible() bool {
	return t == OperationAdd || t == OperationTake || t == OperationAdjust
}

// Movement entrada append-only del ledger. Después de Append el único cambio
// permitido es IsUndone de false a true.
//
// ProductName y Username son copias tomadas al escribir el movimiento; no se
// sincronizan con renombres posteriores.
type Movement struct {
	ID                 int64
	ProductID          int64
	ProductName        string
	UserID             int64
	Username           string
	OperationType      OperationType
	QuantityChange     int // NewQuantity - OldQuantity
	OldQuantity        int
	NewQuantity        int
	Timestamp          time.Time
	Details            *string
	IsUndone           bool
	OriginalMovementID *int64 // solo en movimientos undo

	// Original resumen del movimiento revertido (solo lectura, lo llena List).
	Original *MovementRef
}

// MovementRef resumen del movimiento al que apunta un undo.
type MovementRef struct {
	ID             int64
	OperationType  OperationType
	QuantityChange int
}
