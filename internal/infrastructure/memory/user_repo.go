package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	v view
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.v.do(func(st *state) error {
		if usernameTaken(st, user.Username, 0) {
			return domain.Conflict("username already exists")
		}
		st.nextUserID++
		now := r.v.store.now()
		user.ID = st.nextUserID
		user.CreatedAt = now
		user.UpdatedAt = now
		c := *user
		st.users[user.ID] = &c
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				c := *u
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.users[user.ID]
		if !ok {
			return domain.NotFound("user not found")
		}
		if usernameTaken(st, user.Username, user.ID) {
			return domain.Conflict("username already exists")
		}
		cur.Username = user.Username
		cur.Role = user.Role
		cur.IsActive = user.IsActive
		cur.PasswordHash = user.PasswordHash
		cur.UpdatedAt = r.v.store.now()
		user.UpdatedAt = cur.UpdatedAt
		return nil
	})
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			c := *u
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *UserRepo) CountActiveAdminsForUpdate(_ context.Context) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.IsActive && u.Role == entity.RoleAdmin {
				n++
			}
		}
		return nil
	})
	return n, err
}

func usernameTaken(st *state, username string, exceptID int64) bool {
	for id, u := range st.users {
		if id != exceptID && u.Username == username {
			return true
		}
	}
	return false
}
