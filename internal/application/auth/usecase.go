package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LoginThrottle cuenta intentos fallidos por username. Implementación: Redis.
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// AuthUseCase login y resolución del actor a partir de un token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	throttle LoginThrottle
}

// NewAuthUseCase construye el caso de uso de auth. throttle puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, throttle LoginThrottle) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, throttle: throttle}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Usuario inexistente, inactivo o password incorrecto -> Unauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.InvalidInput("username and password are required")
	}
	if uc.throttle != nil {
		ok, err := uc.throttle.Allow(ctx, username)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.RateLimited("too many failed login attempts, try again later")
		}
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		uc.fail(ctx, username)
		return nil, domain.Unauthorized("invalid credentials or user inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.fail(ctx, username)
		return nil, domain.Unauthorized("invalid credentials")
	}
	if uc.throttle != nil {
		_ = uc.throttle.Reset(ctx, username)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// ResolveActor valida el token y vuelve a cargar el usuario: un usuario borrado o
// desactivado queda fuera aunque su token siga vigente. El rol sale de la BD, no del token.
func (uc *AuthUseCase) ResolveActor(ctx context.Context, token string) (entity.Actor, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return entity.Actor{}, domain.Unauthorized("invalid or expired token")
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return entity.Actor{}, err
	}
	if user == nil || !user.IsActive {
		return entity.Actor{}, domain.Unauthorized("user not found or inactive")
	}
	return entity.ActorOf(user), nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user not found")
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (uc *AuthUseCase) fail(ctx context.Context, username string) {
	if uc.throttle != nil {
		_ = uc.throttle.Fail(ctx, username)
	}
}
