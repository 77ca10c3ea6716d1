package usecase

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// UserTxRunner ejecuta fn dentro de una transacción con un UserRepository atado a ella.
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error
}
