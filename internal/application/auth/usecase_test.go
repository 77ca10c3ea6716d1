package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}

// countingThrottle bloquea tras max fallos.
type countingThrottle struct {
	max   int
	fails map[string]int
}

func (c *countingThrottle) Allow(_ context.Context, key string) (bool, error) {
	return c.fails[key] < c.max, nil
}

func (c *countingThrottle) Fail(_ context.Context, key string) error {
	c.fails[key]++
	return nil
}

func (c *countingThrottle) Reset(_ context.Context, key string) error {
	delete(c.fails, key)
	return nil
}

func seedUser(t *testing.T, store *memory.Store, username, password string, role entity.Role, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Username: username, PasswordHash: string(hash), Role: role, IsActive: active}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestLogin_Success(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "admin", "admin123", entity.RoleAdmin, true)
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg, nil)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Role)

	actor, err := uc.ResolveActor(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, actor.Can(entity.RoleAdmin))
}

func TestLogin_Rejections(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "user", "user123", entity.RoleUser, true)
	seedUser(t, store, "ghost", "ghost123", entity.RoleUser, false)
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg, nil)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "user", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "ghost123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Throttled(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "user", "user123", entity.RoleUser, true)
	throttle := &countingThrottle{max: 2, fails: map[string]int{}}
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg, throttle)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.Login(ctx, dto.LoginRequest{Username: "user", Password: "bad"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	_, err := uc.Login(ctx, dto.LoginRequest{Username: "user", Password: "user123"})
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestResolveActor_DeactivatedUserLosesAccess(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "user", "user123", entity.RoleUser, true)
	uc := auth.NewAuthUseCase(store.Users(), jwtCfg, nil)
	ctx := context.Background()

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "user", Password: "user123"})
	require.NoError(t, err)

	u.IsActive = false
	require.NoError(t, store.Users().Update(ctx, u))

	_, err = uc.ResolveActor(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.ResolveActor(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
