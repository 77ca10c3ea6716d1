// Package memory implementa los puertos de persistencia en memoria.
//
// Las transacciones son serializables: Run toma el mutex del store durante toda la
// transacción, trabaja sobre una copia del estado y la publica solo al confirmar.
// Un error en fn descarta la copia, así que nunca queda estado parcial visible.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner         = (*Store)(nil)
	_ usecase.UserTxRunner       = (*Store)(nil)
	_ repository.StatsRepository = (*StatsRepo)(nil)
)

// Store estado compartido en memoria.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

type state struct {
	products  map[int64]*entity.Product
	movements []*entity.Movement // movements[i].ID == i+1
	users     map[int64]*entity.User

	nextProductID int64
	nextUserID    int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		st: &state{
			products: make(map[int64]*entity.Product),
			users:    make(map[int64]*entity.User),
		},
		now: time.Now,
	}
}

// WithClock reemplaza el reloj usado para timestamps (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (st *state) clone() *state {
	c := &state{
		products:      make(map[int64]*entity.Product, len(st.products)),
		movements:     make([]*entity.Movement, len(st.movements)),
		users:         make(map[int64]*entity.User, len(st.users)),
		nextProductID: st.nextProductID,
		nextUserID:    st.nextUserID,
	}
	for id, p := range st.products {
		c.products[id] = copyProduct(p)
	}
	for i, m := range st.movements {
		c.movements[i] = copyMovement(m)
	}
	for id, u := range st.users {
		cu := *u
		c.users[id] = &cu
	}
	return c
}

// view da acceso al estado: dentro de una tx usa la copia de trabajo (el mutex ya
// está tomado); fuera de una tx toma el mutex por operación.
type view struct {
	store *Store
	tx    *state
}

func (v view) do(fn func(*state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func (s *Store) pool() view { return view{store: s} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: s.pool()} }

// Movements repositorio del ledger fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{v: s.pool()} }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{v: s.pool()} }

// Stats consultas de lectura para estadísticas.
func (s *Store) Stats() *StatsRepo { return &StatsRepo{v: s.pool()} }

// transact toma el mutex, corre fn sobre una copia de trabajo y la publica si no hubo error.
func (s *Store) transact(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(view{store: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return s.transact(ctx, func(v view) error {
		return fn(&MovementRepo{v: v}, &ProductRepo{v: v})
	})
}

// RunUsers implementa usecase.UserTxRunner.
func (s *Store) RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error {
	return s.transact(ctx, func(v view) error {
		return fn(&UserRepo{v: v})
	})
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Category = copyStr(p.Category)
	c.Location = copyStr(p.Location)
	c.Notes = copyStr(p.Notes)
	return &c
}

func copyMovement(m *entity.Movement) *entity.Movement {
	c := *m
	c.Details = copyStr(m.Details)
	if m.OriginalMovementID != nil {
		id := *m.OriginalMovementID
		c.OriginalMovementID = &id
	}
	c.Original = nil
	return &c
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
