package inventory

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// Adaptadores de los requests HTTP a las operaciones del motor de stock.

// CreateFromRequest adapta dto.CreateProductRequest a CreateProduct.
func (uc *StockUseCase) CreateFromRequest(ctx context.Context, actor entity.Actor, in dto.CreateProductRequest) (*StockResult, error) {
	return uc.CreateProduct(ctx, actor, CreateProductInput{
		Name:        in.Name,
		SKU:         in.SKU,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		MinQuantity: in.MinQuantity,
		Category:    in.Category,
		Location:    in.Location,
		Notes:       in.Notes,
	})
}

// UpdateFromRequest adapta dto.UpdateProductRequest a UpdateProduct.
func (uc *StockUseCase) UpdateFromRequest(ctx context.Context, actor entity.Actor, id int64, in dto.UpdateProductRequest) (*StockResult, error) {
	return uc.UpdateProduct(ctx, actor, id, UpdateProductInput{
		Name:        in.Name,
		SKU:         in.SKU,
		Unit:        in.Unit,
		MinQuantity: in.MinQuantity,
		Category:    in.Category,
		Location:    in.Location,
		Notes:       in.Notes,
	})
}

// TakeFromRequest: quantity es obligatorio y debe ser positivo.
func (uc *StockUseCase) TakeFromRequest(ctx context.Context, actor entity.Actor, id int64, in dto.StockChangeRequest) (*StockResult, error) {
	if in.Quantity == nil {
		return nil, domain.InvalidInput("quantity must be a positive number")
	}
	return uc.Take(ctx, actor, id, *in.Quantity, in.Details)
}

// AdjustFromRequest: quantity es el delta con signo.
func (uc *StockUseCase) AdjustFromRequest(ctx context.Context, actor entity.Actor, id int64, in dto.StockChangeRequest) (*StockResult, error) {
	if in.Quantity == nil {
		return nil, domain.InvalidInput("quantity is required")
	}
	return uc.Adjust(ctx, actor, id, *in.Quantity, in.Details)
}
