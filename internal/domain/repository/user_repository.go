package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update guarda username, role, is_active y password_hash.
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	// CountActiveAdminsForUpdate bloquea las filas de admins activos y devuelve cuántos hay.
	CountActiveAdminsForUpdate(ctx context.Context) (int, error)
}
