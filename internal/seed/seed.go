// Package seed carga los usuarios y productos de demostración. Es idempotente:
// lo que ya existe (por username o SKU) no se toca.
package seed

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// DemoUsers credenciales por defecto.
var DemoUsers = []dto.CreateUserRequest{
	{Username: "admin", Password: "admin123", Role: string(entity.RoleAdmin)},
	{Username: "user", Password: "user123", Role: string(entity.RoleUser)},
}

// DemoProducts catálogo inicial. GDT-001 arranca por debajo del mínimo.
var DemoProducts = []inventory.CreateProductInput{
	{Name: "Widget A", SKU: "WGT-001", Quantity: 100, Unit: "pcs", MinQuantity: 20, Category: ptr("Widgets"), Location: ptr("Shelf A1")},
	{Name: "Widget B", SKU: "WGT-002", Quantity: 50, Unit: "pcs", MinQuantity: 10, Category: ptr("Widgets"), Location: ptr("Shelf A2")},
	{Name: "Gadget X", SKU: "GDT-001", Quantity: 15, Unit: "pcs", MinQuantity: 25, Category: ptr("Gadgets"), Location: ptr("Shelf B1")},
	{Name: "Cable USB-C", SKU: "CBL-001", Quantity: 200, Unit: "pcs", MinQuantity: 50, Category: ptr("Cables"), Location: ptr("Bin C3")},
	{Name: "Power Adapter", SKU: "PWR-001", Quantity: 30, Unit: "pcs", MinQuantity: 10, Category: ptr("Power"), Location: ptr("Shelf D1")},
}

// Deps repositorios y casos de uso que usa el seed.
type Deps struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	UserUC   *usecase.UserUseCase
	StockUC  *inventory.StockUseCase
}

// Result cuántos registros se crearon.
type Result struct {
	Users    int
	Products int
}

// Run crea los usuarios y productos que falten. Los productos se crean como el
// primer admin para que el stock inicial quede en el ledger como movimiento add.
func Run(ctx context.Context, deps Deps, log *logger.Logger) (Result, error) {
	var res Result
	for _, in := range DemoUsers {
		existing, err := deps.Users.GetByUsername(ctx, in.Username)
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", in.Username, err)
		}
		if existing != nil {
			continue
		}
		if _, err := deps.UserUC.Create(ctx, in); err != nil {
			return res, fmt.Errorf("seed user %s: %w", in.Username, err)
		}
		res.Users++
		log.Info().Str("username", in.Username).Str("role", in.Role).Msg("usuario creado")
	}

	admin, err := deps.Users.GetByUsername(ctx, DemoUsers[0].Username)
	if err != nil {
		return res, fmt.Errorf("seed: buscar admin: %w", err)
	}
	if admin == nil {
		return res, fmt.Errorf("seed: admin %q no existe", DemoUsers[0].Username)
	}
	actor := entity.ActorOf(admin)

	for _, in := range DemoProducts {
		existing, err := deps.Products.GetBySKU(ctx, in.SKU)
		if err != nil {
			return res, fmt.Errorf("seed product %s: %w", in.SKU, err)
		}
		if existing != nil {
			continue
		}
		if _, err := deps.StockUC.CreateProduct(ctx, actor, in); err != nil {
			return res, fmt.Errorf("seed product %s: %w", in.SKU, err)
		}
		res.Products++
		log.Info().Str("sku", in.SKU).Int("quantity", in.Quantity).Msg("producto creado")
	}
	return res, nil
}

func ptr(s string) *string { return &s }
