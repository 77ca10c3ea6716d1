package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	v view
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.v.do(func(st *state) error {
		if skuTaken(st, product.SKU, 0) {
			return domain.Conflict("SKU already exists")
		}
		if product.Quantity < 0 {
			return fmt.Errorf("insert product: quantity check violated")
		}
		st.nextProductID++
		now := r.v.store.now()
		product.ID = st.nextProductID
		product.CreatedAt = now
		product.UpdatedAt = now
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = copyProduct(p)
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate: el mutex del store ya serializa la transacción completa.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				out = copyProduct(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) UpdateDetails(_ context.Context, product *entity.Product) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return domain.NotFound("product not found")
		}
		if skuTaken(st, product.SKU, product.ID) {
			return domain.Conflict("SKU already exists")
		}
		cur.Name = product.Name
		cur.SKU = product.SKU
		cur.Unit = product.Unit
		cur.MinQuantity = product.MinQuantity
		cur.Category = copyStr(product.Category)
		cur.Location = copyStr(product.Location)
		cur.Notes = copyStr(product.Notes)
		cur.UpdatedAt = r.v.store.now()
		product.UpdatedAt = cur.UpdatedAt
		return nil
	})
}

func (r *ProductRepo) SetQuantity(_ context.Context, id int64, qty int) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.NotFound("product not found")
		}
		if qty < 0 {
			return fmt.Errorf("set quantity: quantity check violated")
		}
		cur.Quantity = qty
		cur.UpdatedAt = r.v.store.now()
		return nil
	})
}

func (r *ProductRepo) SetActive(_ context.Context, id int64, active bool) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.NotFound("product not found")
		}
		cur.IsActive = active
		cur.UpdatedAt = r.v.store.now()
		return nil
	})
}

// List filtra comparando los dos enteros (quantity <= minQuantity) para low stock,
// igual que la comparación columna contra columna del repositorio SQL.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter, s repository.Sort, page repository.Page) ([]*entity.Product, int, error) {
	var matched []*entity.Product
	err := r.v.do(func(st *state) error {
		search := strings.ToLower(filter.Search)
		for _, p := range st.products {
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) {
				continue
			}
			if filter.Category != "" && (p.Category == nil || *p.Category != filter.Category) {
				continue
			}
			if filter.IsActive != nil && p.IsActive != *filter.IsActive {
				continue
			}
			if filter.LowStock && !p.IsLowStock() {
				continue
			}
			matched = append(matched, copyProduct(p))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(matched, func(i, j int) bool {
		less, equal := compareProducts(matched[i], matched[j], s.Field)
		if equal {
			return matched[i].ID < matched[j].ID
		}
		if s.Desc {
			return !less
		}
		return less
	})
	return paginate(matched, page), len(matched), nil
}

func compareProducts(a, b *entity.Product, field string) (less, equal bool) {
	switch field {
	case repository.ProductSortSKU:
		return a.SKU < b.SKU, a.SKU == b.SKU
	case repository.ProductSortQuantity:
		return a.Quantity < b.Quantity, a.Quantity == b.Quantity
	case repository.ProductSortMinQuantity:
		return a.MinQuantity < b.MinQuantity, a.MinQuantity == b.MinQuantity
	case repository.ProductSortCategory:
		ca, cb := deref(a.Category), deref(b.Category)
		return ca < cb, ca == cb
	case repository.ProductSortCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	case repository.ProductSortUpdatedAt:
		return a.UpdatedAt.Before(b.UpdatedAt), a.UpdatedAt.Equal(b.UpdatedAt)
	default:
		return a.Name < b.Name, a.Name == b.Name
	}
}

func skuTaken(st *state, sku string, exceptID int64) bool {
	for id, p := range st.products {
		if id != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page repository.Page) []T {
	if page.Limit <= 0 {
		return items
	}
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	if page.Limit >= len(items)-start {
		return items[start:]
	}
	return items[start : start+page.Limit]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
