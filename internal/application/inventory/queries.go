package inventory

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// ListFromRequest listado paginado de productos. Orden por defecto: name asc.
func (uc *StockUseCase) ListFromRequest(ctx context.Context, in dto.ProductListRequest) (*dto.PageResponse[dto.ProductResponse], error) {
	if err := in.DefaultPage(); err != nil {
		return nil, err
	}
	filter := repository.ProductFilter{
		Search:   strings.TrimSpace(in.Search),
		Category: strings.TrimSpace(in.Category),
		LowStock: in.LowStock,
	}
	if in.IsActive != "" {
		active, err := strconv.ParseBool(in.IsActive)
		if err != nil {
			return nil, domain.InvalidInput("isActive must be true or false")
		}
		filter.IsActive = &active
	}
	field := in.SortBy
	if field == "" {
		field = repository.ProductSortName
	}
	items, total, err := uc.products.List(ctx, filter,
		repository.Sort{Field: field, Desc: in.Desc(false)},
		repository.Page{Number: in.Page, Limit: in.Limit},
	)
	if err != nil {
		return nil, err
	}
	return &dto.PageResponse[dto.ProductResponse]{
		Data:       dto.ToProductResponses(items),
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// LedgerUseCase consultas de solo lectura sobre el ledger de movimientos.
type LedgerUseCase struct {
	movements repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movements repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{movements: movements}
}

// List listado paginado. Orden por defecto: timestamp desc.
func (uc *LedgerUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.PageResponse[dto.MovementResponse], error) {
	if err := in.DefaultPage(); err != nil {
		return nil, err
	}
	filter := repository.MovementFilter{Search: strings.TrimSpace(in.Search)}
	if in.ProductID > 0 {
		filter.ProductID = &in.ProductID
	}
	if in.UserID > 0 {
		filter.UserID = &in.UserID
	}
	if in.OperationType != "" {
		op := entity.OperationType(strings.ToLower(in.OperationType))
		if !op.Valid() {
			return nil, domain.InvalidInput("operationType must be one of add, take, adjust, edit, undo")
		}
		filter.OperationType = op
	}
	from, err := parseDate(in.StartDate, false)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(in.EndDate, true)
	if err != nil {
		return nil, err
	}
	filter.From, filter.To = from, to

	field := in.SortBy
	if field == "" {
		field = repository.MovementSortTimestamp
	}
	items, total, err := uc.movements.List(ctx, filter,
		repository.Sort{Field: field, Desc: in.Desc(true)},
		repository.Page{Number: in.Page, Limit: in.Limit},
	)
	if err != nil {
		return nil, err
	}
	return &dto.PageResponse[dto.MovementResponse]{
		Data:       dto.ToMovementResponses(items),
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// parseDate acepta RFC3339 o YYYY-MM-DD (UTC). Con endOfDay una fecha sin hora
// cubre el día completo.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, domain.InvalidInput("dates must be RFC3339 or YYYY-MM-DD")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
