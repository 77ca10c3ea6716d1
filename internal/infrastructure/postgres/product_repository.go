package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, quantity, unit, min_quantity, category, location, notes, is_active, created_at, updated_at`

var productSortColumns = map[string]string{
	repository.ProductSortName:        "name",
	repository.ProductSortSKU:         "sku",
	repository.ProductSortQuantity:    "quantity",
	repository.ProductSortMinQuantity: "min_quantity",
	repository.ProductSortCategory:    "category",
	repository.ProductSortCreatedAt:   "created_at",
	repository.ProductSortUpdatedAt:   "updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y completa ID, CreatedAt y UpdatedAt.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, sku, quantity, unit, min_quantity, category, location, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.SKU, product.Quantity, product.Unit, product.MinQuantity,
		product.Category, product.Location, product.Notes, product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("SKU already exists")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el producto y bloquea la fila hasta el fin de la tx.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// UpdateDetails actualiza los campos descriptivos. No toca quantity ni is_active.
func (r *ProductRepo) UpdateDetails(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, sku = $3, unit = $4, min_quantity = $5, category = $6, location = $7, notes = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		product.ID, product.Name, product.SKU, product.Unit, product.MinQuantity,
		product.Category, product.Location, product.Notes,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("product not found")
		}
		if isUniqueViolation(err) {
			return domain.Conflict("SKU already exists")
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetQuantity fija la cantidad. El CHECK (quantity >= 0) de la tabla es la última barrera.
func (r *ProductRepo) SetQuantity(ctx context.Context, id int64, qty int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`, id, qty)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("product not found")
	}
	return nil
}

// SetActive activa o desactiva el producto.
func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("product not found")
	}
	return nil
}

// List lista productos con filtros, orden de lista blanca y paginación. Devuelve también el total.
// Page.Limit <= 0 devuelve todas las filas.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter, sort repository.Sort, page repository.Page) ([]*entity.Product, int, error) {
	var w where
	if filter.Search != "" {
		w.add("(name ILIKE ? OR sku ILIKE ?)", containsPattern(filter.Search))
	}
	if filter.Category != "" {
		w.add("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		w.add("is_active = ?", *filter.IsActive)
	}
	if filter.LowStock {
		w.addRaw("quantity <= min_quantity")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + w.String() +
		` ORDER BY ` + orderBy(productSortColumns, sort.Field, repository.ProductSortName, sort.Desc) + `, id ASC`
	args := w.args
	if page.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %s OFFSET %s", placeholder(len(args)+1), placeholder(len(args)+2))
		args = append(args, page.Limit, page.Offset())
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return list, total, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Quantity, &p.Unit, &p.MinQuantity,
		&p.Category, &p.Location, &p.Notes, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
