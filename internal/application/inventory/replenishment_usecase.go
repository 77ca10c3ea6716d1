package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos con
// quantity <= minQuantity, con la cantidad sugerida para volver a un stock ideal.
type ReplenishmentUseCase struct {
	products repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(products repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products}
}

// IdealStock es minQuantity * 1.5 redondeado hacia arriba.
func IdealStock(minQuantity int) int {
	return (minQuantity*3 + 1) / 2
}

// GenerateReplenishmentList devuelve los productos en low stock ordenados por
// urgencia: primero los que están más lejos (en proporción) de su mínimo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	active := true
	items, _, err := uc.products.List(ctx,
		repository.ProductFilter{IsActive: &active, LowStock: true},
		repository.Sort{Field: repository.ProductSortName},
		repository.Page{},
	)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, p := range items {
		ideal := IdealStock(p.MinQuantity)
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			Unit:              p.Unit,
			CurrentStock:      p.Quantity,
			MinQuantity:       p.MinQuantity,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}

	// Cobertura = current/min; menor cobertura = más urgente. Comparación en enteros
	// (a.cur*b.min < b.cur*a.min) para no dividir por cero cuando min = 0.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		l, r := a.CurrentStock*b.MinQuantity, b.CurrentStock*a.MinQuantity
		if l != r {
			return l < r
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
