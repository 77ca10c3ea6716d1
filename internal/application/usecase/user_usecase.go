package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios: alta por un admin, edición con
// la guarda del último admin y gestión de contraseñas.
type UserUseCase struct {
	txRunner UserTxRunner
	repo     repository.UserRepository
	cost     int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(txRunner UserTxRunner, repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{txRunner: txRunner, repo: repo, cost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.cost = cost
	return uc
}

// List devuelve todos los usuarios ordenados por ID.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario. Un rol distinto de admin se guarda como user.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.InvalidInput("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         entity.ParseRole(in.Role),
		IsActive:     true,
	}
	err = uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository) error {
		existing, err := userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("username already exists")
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Update cambia username, rol y/o estado. Desactivar o degradar al último admin
// activo devuelve Conflict; las filas de admins quedan bloqueadas mientras se cuentan.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		return nil, domain.InvalidInput("username cannot be empty")
	}

	var user *entity.User
	err := uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository) error {
		var err error
		user, err = userRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NotFound("user not found")
		}

		demote := in.Role != nil && entity.ParseRole(*in.Role) != entity.RoleAdmin
		deactivate := in.IsActive != nil && !*in.IsActive
		if user.Role == entity.RoleAdmin && user.IsActive && (demote || deactivate) {
			admins, err := userRepo.CountActiveAdminsForUpdate(ctx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return domain.Conflict("cannot deactivate or demote the last admin")
			}
		}

		if in.Username != nil {
			username := strings.TrimSpace(*in.Username)
			if username != user.Username {
				existing, err := userRepo.GetByUsername(ctx, username)
				if err != nil {
					return err
				}
				if existing != nil {
					return domain.Conflict("username already exists")
				}
				user.Username = username
			}
		}
		if in.Role != nil {
			user.Role = entity.ParseRole(*in.Role)
		}
		if in.IsActive != nil {
			user.IsActive = *in.IsActive
		}
		return userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ResetPassword fija un nuevo password para otro usuario (admin).
func (uc *UserUseCase) ResetPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return domain.InvalidInput("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return err
	}
	return uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository) error {
		user, err := userRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NotFound("user not found")
		}
		user.PasswordHash = string(hash)
		return userRepo.Update(ctx, user)
	})
}

// ChangePassword cambia el password del propio actor tras verificar el actual.
func (uc *UserUseCase) ChangePassword(ctx context.Context, actor entity.Actor, in dto.ChangePasswordRequest) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return domain.InvalidInput("current password and new password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.cost)
	if err != nil {
		return err
	}
	return uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository) error {
		user, err := userRepo.GetByIDForUpdate(ctx, actor.ID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NotFound("user not found")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return domain.Unauthorized("current password is incorrect")
		}
		user.PasswordHash = string(hash)
		return userRepo.Update(ctx, user)
	})
}
