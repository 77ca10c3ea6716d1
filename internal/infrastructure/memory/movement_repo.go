package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger en memoria. Los movimientos solo se agregan; el único
// campo mutable es IsUndone.
type MovementRepo struct {
	v view
}

func (r *MovementRepo) Append(_ context.Context, movement *entity.Movement) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[movement.ProductID]; !ok {
			return domain.NotFound("product not found")
		}
		movement.ID = int64(len(st.movements) + 1)
		movement.Timestamp = r.v.store.now()
		st.movements = append(st.movements, copyMovement(movement))
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.v.do(func(st *state) error {
		if m := lookup(st, id); m != nil {
			out = withOriginal(st, m)
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepo) MarkUndone(_ context.Context, id int64) error {
	return r.v.do(func(st *state) error {
		m := lookup(st, id)
		if m == nil {
			return domain.NotFound("movement not found")
		}
		if m.IsUndone {
			return domain.Conflict("this movement has already been undone")
		}
		m.IsUndone = true
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter, s repository.Sort, page repository.Page) ([]*entity.Movement, int, error) {
	var matched []*entity.Movement
	err := r.v.do(func(st *state) error {
		search := strings.ToLower(filter.Search)
		for _, m := range st.movements {
			if filter.ProductID != nil && m.ProductID != *filter.ProductID {
				continue
			}
			if filter.UserID != nil && m.UserID != *filter.UserID {
				continue
			}
			if filter.OperationType != "" && m.OperationType != filter.OperationType {
				continue
			}
			if filter.From != nil && m.Timestamp.Before(*filter.From) {
				continue
			}
			if filter.To != nil && m.Timestamp.After(*filter.To) {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(deref(m.Details)), search) &&
				!strings.Contains(strings.ToLower(m.ProductName), search) &&
				!strings.Contains(strings.ToLower(m.Username), search) {
				continue
			}
			matched = append(matched, withOriginal(st, m))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(matched, func(i, j int) bool {
		less, equal := compareMovements(matched[i], matched[j], s.Field)
		if equal {
			// desempate estable por id en la misma dirección
			if s.Desc {
				return matched[i].ID > matched[j].ID
			}
			return matched[i].ID < matched[j].ID
		}
		if s.Desc {
			return !less
		}
		return less
	})
	return paginate(matched, page), len(matched), nil
}

func compareMovements(a, b *entity.Movement, field string) (less, equal bool) {
	switch field {
	case repository.MovementSortID:
		return a.ID < b.ID, a.ID == b.ID
	case repository.MovementSortProductName:
		return a.ProductName < b.ProductName, a.ProductName == b.ProductName
	case repository.MovementSortUsername:
		return a.Username < b.Username, a.Username == b.Username
	case repository.MovementSortOperationType:
		return a.OperationType < b.OperationType, a.OperationType == b.OperationType
	case repository.MovementSortQuantityChange:
		return a.QuantityChange < b.QuantityChange, a.QuantityChange == b.QuantityChange
	default:
		return a.Timestamp.Before(b.Timestamp), a.Timestamp.Equal(b.Timestamp)
	}
}

func lookup(st *state, id int64) *entity.Movement {
	if id < 1 || id > int64(len(st.movements)) {
		return nil
	}
	return st.movements[id-1]
}

// withOriginal copia m y, si es un undo, adjunta el resumen del movimiento revertido.
func withOriginal(st *state, m *entity.Movement) *entity.Movement {
	c := copyMovement(m)
	if m.OriginalMovementID != nil {
		if orig := lookup(st, *m.OriginalMovementID); orig != nil {
			c.Original = &entity.MovementRef{
				ID:             orig.ID,
				OperationType:  orig.OperationType,
				QuantityChange: orig.QuantityChange,
			}
		}
	}
	return c
}
