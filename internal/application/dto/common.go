package dto

import (
	"math"

	"github.com/jhoicas/stockroom-api/internal/domain"
)

// PageRequest query de paginación y orden compartida por los listados.
type PageRequest struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"` // asc | desc
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// DefaultPage aplica valores por defecto y acota el límite. Una página cuyo
// offset no cabe en int32 es InvalidInput.
func (p *PageRequest) DefaultPage() error {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Page-1 > math.MaxInt32/p.Limit {
		return domain.InvalidInput("page is out of range")
	}
	return nil
}

// Desc indica orden descendente; un valor distinto de asc/desc devuelve def.
func (p *PageRequest) Desc(def bool) bool {
	switch p.SortOrder {
	case "asc":
		return false
	case "desc":
		return true
	default:
		return def
	}
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula totalPages (ceil(total/limit)).
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// PageResponse envoltorio {data, pagination} de los listados.
type PageResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
