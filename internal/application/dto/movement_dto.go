package dto

import "time"

// MovementListRequest filtros de GET /api/movements.
type MovementListRequest struct {
	PageRequest
	ProductID     int64  `query:"productId"`
	UserID        int64  `query:"userId"`
	OperationType string `query:"operationType"`
	StartDate     string `query:"startDate"` // RFC3339 o YYYY-MM-DD
	EndDate       string `query:"endDate"`
	Search        string `query:"search"`
}

// MovementRefResponse resumen del movimiento revertido por un undo.
type MovementRefResponse struct {
	ID             int64  `json:"id"`
	OperationType  string `json:"operationType"`
	QuantityChange int    `json:"quantityChange"`
}

// MovementResponse fila del ledger.
type MovementResponse struct {
	ID                 int64                `json:"id"`
	ProductID          int64                `json:"productId"`
	ProductName        string               `json:"productName"`
	UserID             int64                `json:"userId"`
	Username           string               `json:"username"`
	OperationType      string               `json:"operationType"`
	QuantityChange     int                  `json:"quantityChange"`
	OldQuantity        int                  `json:"oldQuantity"`
	NewQuantity        int                  `json:"newQuantity"`
	Timestamp          time.Time            `json:"timestamp"`
	Details            *string              `json:"details"`
	IsUndone           bool                 `json:"isUndone"`
	OriginalMovementID *int64               `json:"originalMovementId"`
	Original           *MovementRefResponse `json:"originalMovement,omitempty"`
}

// UndoResponse salida de POST /api/movements/:id/undo.
type UndoResponse struct {
	Message      string           `json:"message"`
	UndoMovement MovementResponse `json:"undoMovement"`
	Product      ProductResponse  `json:"product"`
}
