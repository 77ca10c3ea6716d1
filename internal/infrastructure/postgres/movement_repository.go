package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `m.id, m.product_id, m.product_name, m.user_id, m.username, m.operation_type,
	m.quantity_change, m.old_quantity, m.new_quantity, m.occurred_at, m.details, m.is_undone, m.original_movement_id`

// Resumen del movimiento revertido (solo filas undo).
const originalColumns = `o.id, o.operation_type, o.quantity_change`

var movementSortColumns = map[string]string{
	repository.MovementSortTimestamp:      "m.occurred_at",
	repository.MovementSortID:             "m.id",
	repository.MovementSortProductName:    "m.product_name",
	repository.MovementSortUsername:       "m.username",
	repository.MovementSortOperationType:  "m.operation_type",
	repository.MovementSortQuantityChange: "m.quantity_change",
}

// MovementRepo ledger de movimientos sobre PostgreSQL. Solo INSERT y el flip de is_undone.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta el movimiento; ID y timestamp los asigna la BD.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, product_name, user_id, username, operation_type,
			quantity_change, old_quantity, new_quantity, details, original_movement_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, occurred_at`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.ProductName, m.UserID, m.Username, string(m.OperationType),
		m.QuantityChange, m.OldQuantity, m.NewQuantity, m.Details, m.OriginalMovementID,
	).Scan(&m.ID, &m.Timestamp)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene el movimiento con el resumen de su original si es un undo.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `, ` + originalColumns + `
		FROM movements m LEFT JOIN movements o ON o.id = m.original_movement_id
		WHERE m.id = $1`
	m, err := scanMovementWithOriginal(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetByIDForUpdate bloquea la fila del movimiento. Sin JOIN: FOR UPDATE no admite el lado nullable de un outer join.
func (r *MovementRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements m WHERE m.id = $1 FOR UPDATE`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement for update: %w", err)
	}
	return m, nil
}

// MarkUndone pasa is_undone a true una sola vez. 0 filas afectadas = ya revertido o inexistente.
func (r *MovementRepo) MarkUndone(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `UPDATE movements SET is_undone = TRUE WHERE id = $1 AND NOT is_undone`, id)
	if err != nil {
		return fmt.Errorf("mark movement undone: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movements WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check movement: %w", err)
	}
	if !exists {
		return domain.NotFound("movement not found")
	}
	return domain.Conflict("this movement has already been undone")
}

// List lista movimientos con filtros, orden y paginación. Page.Limit <= 0 devuelve todo.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, sort repository.Sort, page repository.Page) ([]*entity.Movement, int, error) {
	var w where
	if filter.ProductID != nil {
		w.add("m.product_id = ?", *filter.ProductID)
	}
	if filter.UserID != nil {
		w.add("m.user_id = ?", *filter.UserID)
	}
	if filter.OperationType != "" {
		w.add("m.operation_type = ?", string(filter.OperationType))
	}
	if filter.From != nil {
		w.add("m.occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("m.occurred_at <= ?", *filter.To)
	}
	if filter.Search != "" {
		w.add("(m.details ILIKE ? OR m.product_name ILIKE ? OR m.username ILIKE ?)", containsPattern(filter.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements m`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	dir := " ASC"
	if sort.Desc {
		dir = " DESC"
	}
	query := `SELECT ` + movementColumns + `, ` + originalColumns + `
		FROM movements m LEFT JOIN movements o ON o.id = m.original_movement_id` + w.String() +
		` ORDER BY ` + orderBy(movementSortColumns, sort.Field, repository.MovementSortTimestamp, sort.Desc) + `, m.id` + dir
	args := w.args
	if page.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %s OFFSET %s", placeholder(len(args)+1), placeholder(len(args)+2))
		args = append(args, page.Limit, page.Offset())
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovementWithOriginal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	return list, total, nil
}

func movementDest(m *entity.Movement, op *string) []any {
	return []any{
		&m.ID, &m.ProductID, &m.ProductName, &m.UserID, &m.Username, op,
		&m.QuantityChange, &m.OldQuantity, &m.NewQuantity, &m.Timestamp, &m.Details, &m.IsUndone, &m.OriginalMovementID,
	}
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m  entity.Movement
		op string
	)
	if err := row.Scan(movementDest(&m, &op)...); err != nil {
		return nil, err
	}
	m.OperationType = entity.OperationType(op)
	return &m, nil
}

func scanMovementWithOriginal(row pgx.Row) (*entity.Movement, error) {
	var (
		m            entity.Movement
		op           string
		origID       *int64
		origOp       *string
		origQuantity *int
	)
	dest := append(movementDest(&m, &op), &origID, &origOp, &origQuantity)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	m.OperationType = entity.OperationType(op)
	if origID != nil && origOp != nil && origQuantity != nil {
		m.Original = &entity.MovementRef{
			ID:             *origID,
			OperationType:  entity.OperationType(*origOp),
			QuantityChange: *origQuantity,
		}
	}
	return &m, nil
}
