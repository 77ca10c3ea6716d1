package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// Campos ordenables de movimientos.
const (
	MovementSortTimestamp      = "timestamp"
	MovementSortID             = "id"
	MovementSortProductName    = "productName"
	MovementSortUsername       = "username"
	MovementSortOperationType  = "operationType"
	MovementSortQuantityChange = "quantityChange"
)

// MovementFilter criterios de búsqueda del ledger. Campos nil/vacíos no filtran.
type MovementFilter struct {
	ProductID     *int64
	UserID        *int64
	OperationType entity.OperationType
	From          *time.Time
	To            *time.Time
	Search        string // contiene, en details, product_name o username
}

// MovementRepository es el ledger append-only de movimientos.
type MovementRepository interface {
	// Append asigna ID y Timestamp y guarda el resto tal cual.
	Append(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Movement, error)
	// MarkUndone pone is_undone una sola vez; una segunda llamada falla con ErrConflict.
	MarkUndone(ctx context.Context, id int64) error
	List(ctx context.Context, filter MovementFilter, sort Sort, page Page) ([]*entity.Movement, int, error)
}
