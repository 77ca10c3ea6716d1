package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// StockUseCase motor de mutaciones de stock. Cada mutación valida, actualiza el
// producto y escribe en el ledger dentro de una sola transacción, con la fila del
// producto bloqueada (SELECT FOR UPDATE) antes de leer su cantidad.
type StockUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, products repository.ProductRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, products: products}
}

// StockResult producto actualizado y el movimiento que lo produjo.
type StockResult struct {
	Product  *entity.Product
	Movement *entity.Movement
}

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	Name        string
	SKU         string
	Quantity    int
	Unit        string
	MinQuantity int
	Category    *string
	Location    *string
	Notes       *string
}

// UpdateProductInput campos opcionales; nil = sin cambio.
type UpdateProductInput struct {
	Name        *string
	SKU         *string
	Unit        *string
	MinQuantity *int
	Category    *string
	Location    *string
	Notes       *string
}

// CreateProduct crea el producto y, si trae cantidad inicial, registra un movimiento add (0 -> qty).
// Movement es nil cuando la cantidad inicial es 0.
func (uc *StockUseCase) CreateProduct(ctx context.Context, actor entity.Actor, in CreateProductInput) (*StockResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	if in.Name == "" || in.SKU == "" {
		return nil, domain.InvalidInput("name and SKU are required")
	}
	if err := inventory.ValidateMinQuantity(in.MinQuantity); err != nil {
		return nil, err
	}
	tr, err := inventory.Initial(in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.Unit == "" {
		in.Unit = entity.DefaultUnit
	}

	var result StockResult
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		existing, err := productRepo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("SKU already exists")
		}
		product := &entity.Product{
			Name:        in.Name,
			SKU:         in.SKU,
			Quantity:    tr.New,
			MinQuantity: in.MinQuantity,
			Unit:        in.Unit,
			Category:    in.Category,
			Location:    in.Location,
			Notes:       in.Notes,
			IsActive:    true,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		result.Product = product
		if tr.Change == 0 {
			return nil
		}
		mov := newMovement(product, actor, entity.OperationAdd, tr, strPtr("Initial stock on product creation"))
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		result.Movement = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProduct actualiza los datos descriptivos y registra un movimiento edit (cantidad sin cambio).
func (uc *StockUseCase) UpdateProduct(ctx context.Context, actor entity.Actor, id int64, in UpdateProductInput) (*StockResult, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.InvalidInput("name cannot be empty")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		return nil, domain.InvalidInput("SKU cannot be empty")
	}
	if in.MinQuantity != nil {
		if err := inventory.ValidateMinQuantity(*in.MinQuantity); err != nil {
			return nil, err
		}
	}

	var result StockResult
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := lockProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		if in.SKU != nil {
			sku := strings.TrimSpace(*in.SKU)
			if sku != product.SKU {
				existing, err := productRepo.GetBySKU(ctx, sku)
				if err != nil {
					return err
				}
				if existing != nil {
					return domain.Conflict("SKU already exists")
				}
				product.SKU = sku
			}
		}
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.Unit != nil {
			product.Unit = *in.Unit
		}
		if in.MinQuantity != nil {
			product.MinQuantity = *in.MinQuantity
		}
		if in.Category != nil {
			product.Category = in.Category
		}
		if in.Location != nil {
			product.Location = in.Location
		}
		if in.Notes != nil {
			product.Notes = in.Notes
		}
		if err := productRepo.UpdateDetails(ctx, product); err != nil {
			return err
		}
		mov := newMovement(product, actor, entity.OperationEdit, inventory.Edit(product), strPtr("Product details updated"))
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		result = StockResult{Product: product, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Take descuenta amount del stock. Cualquier usuario autenticado.
func (uc *StockUseCase) Take(ctx context.Context, actor entity.Actor, id int64, amount int, details *string) (*StockResult, error) {
	if amount <= 0 {
		return nil, domain.InvalidInput("quantity must be a positive number")
	}
	return uc.mutate(ctx, actor, id, entity.OperationTake, details, func(p *entity.Product) (inventory.Transition, error) {
		return inventory.Take(p, amount)
	})
}

// Adjust suma delta (con signo) al stock.
func (uc *StockUseCase) Adjust(ctx context.Context, actor entity.Actor, id int64, delta int, details *string) (*StockResult, error) {
	return uc.mutate(ctx, actor, id, entity.OperationAdjust, details, func(p *entity.Product) (inventory.Transition, error) {
		return inventory.Adjust(p, delta)
	})
}

// mutate bloquea el producto, calcula la transición sobre la cantidad confirmada y
// guarda producto + movimiento en la misma transacción.
func (uc *StockUseCase) mutate(
	ctx context.Context,
	actor entity.Actor,
	id int64,
	op entity.OperationType,
	details *string,
	plan func(*entity.Product) (inventory.Transition, error),
) (*StockResult, error) {
	var result StockResult
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := lockProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		tr, err := plan(product)
		if err != nil {
			return err
		}
		if err := productRepo.SetQuantity(ctx, product.ID, tr.New); err != nil {
			return err
		}
		product.Quantity = tr.New
		mov := newMovement(product, actor, op, tr, nonEmpty(details))
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		result = StockResult{Product: product, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Undo revierte un movimiento add/take/adjust: agrega un movimiento undo con
// OriginalMovementID, marca el original como revertido y corrige la cantidad.
// Orden de bloqueo: movimiento y luego producto. Dos undo concurrentes del mismo
// movimiento se serializan en su fila y el segundo ve IsUndone=true.
func (uc *StockUseCase) Undo(ctx context.Context, actor entity.Actor, movementID int64) (*StockResult, error) {
	var result StockResult
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		target, err := movRepo.GetByIDForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.NotFound("movement not found")
		}
		product, err := productRepo.GetByIDForUpdate(ctx, target.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("product no longer exists")
		}
		tr, err := inventory.Undo(product, target)
		if err != nil {
			return err
		}
		if err := productRepo.SetQuantity(ctx, product.ID, tr.New); err != nil {
			return err
		}
		product.Quantity = tr.New

		details := fmt.Sprintf("Undo of %s operation (ID: %d)", target.OperationType, target.ID)
		mov := newMovement(product, actor, entity.OperationUndo, tr, &details)
		mov.OriginalMovementID = &target.ID
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		if err := movRepo.MarkUndone(ctx, target.ID); err != nil {
			return err
		}
		mov.Original = &entity.MovementRef{ID: target.ID, OperationType: target.OperationType, QuantityChange: target.QuantityChange}
		result = StockResult{Product: product, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetActive activa o desactiva un producto. No genera movimiento.
func (uc *StockUseCase) SetActive(ctx context.Context, id int64, active bool) (*entity.Product, error) {
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(_ repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := lockProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		if err := productRepo.SetActive(ctx, id, active); err != nil {
			return err
		}
		product.IsActive = active
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct lectura simple fuera de transacción.
func (uc *StockUseCase) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product not found")
	}
	return product, nil
}

// ListProducts listado paginado con total.
func (uc *StockUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter, sort repository.Sort, page repository.Page) ([]*entity.Product, int, error) {
	return uc.products.List(ctx, filter, sort, page)
}

func lockProduct(ctx context.Context, repo repository.ProductRepository, id int64) (*entity.Product, error) {
	product, err := repo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product not found")
	}
	return product, nil
}

func newMovement(p *entity.Product, actor entity.Actor, op entity.OperationType, tr inventory.Transition, details *string) *entity.Movement {
	return &entity.Movement{
		ProductID:      p.ID,
		ProductName:    p.Name,
		UserID:         actor.ID,
		Username:       actor.Username,
		OperationType:  op,
		QuantityChange: tr.Change,
		OldQuantity:    tr.Old,
		NewQuantity:    tr.New,
		Details:        details,
	}
}

func strPtr(s string) *string { return &s }

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
