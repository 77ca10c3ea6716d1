package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
)

func newUserUseCase() (*usecase.UserUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewUserUseCase(store, store.Users()).WithBcryptCost(bcrypt.MinCost), store
}

func ptr[T any](v T) *T { return &v }

func TestCreate_DefaultsRoleAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUserUseCase()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "alice", Password: "secret", Role: "superuser"})
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.IsActive)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "  ", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_LastAdminGuard(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUserUseCase()

	admin, err := uc.Create(ctx, dto.CreateUserRequest{Username: "admin", Password: "admin123", Role: "admin"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, admin.ID, dto.UpdateUserRequest{Role: ptr("user")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Update(ctx, admin.ID, dto.UpdateUserRequest{IsActive: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Con un segundo admin activo la degradación procede.
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "root", Password: "pw", Role: "admin"})
	require.NoError(t, err)
	updated, err := uc.Update(ctx, admin.ID, dto.UpdateUserRequest{Role: ptr("user")})
	require.NoError(t, err)
	assert.Equal(t, "user", updated.Role)

	users, err := uc.List(ctx)
	require.NoError(t, err)
	admins := 0
	for _, u := range users {
		if u.Role == "admin" && u.IsActive {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestUpdate_UsernameUniqueAndNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUserUseCase()
	_, err := uc.Create(ctx, dto.CreateUserRequest{Username: "a", Password: "pw"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateUserRequest{Username: "b", Password: "pw"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, b.ID, dto.UpdateUserRequest{Username: ptr("a")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, 999, dto.UpdateUserRequest{IsActive: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	uc, store := newUserUseCase()
	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "bob", Password: "old-pw"})
	require.NoError(t, err)
	actor := entity.Actor{ID: u.ID, Username: u.Username, Role: entity.RoleUser}

	err = uc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-pw"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{CurrentPassword: "old-pw", NewPassword: "new-pw"}))
	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-pw")))
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	uc, store := newUserUseCase()
	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "carol", Password: "pw"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.ResetPassword(ctx, u.ID, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.ResetPassword(ctx, 42, "x"), domain.ErrNotFound)
	require.NoError(t, uc.ResetPassword(ctx, u.ID, "fresh"))

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("fresh")))
}
