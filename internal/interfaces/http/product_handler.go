package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// ProductHandler maneja productos y las mutaciones de stock (protegido).
type ProductHandler struct {
	uc            *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, replenishment: replenishment}
}

func stockChangeResponse(res *inventory.StockResult) dto.StockChangeResponse {
	out := dto.StockChangeResponse{Product: dto.ToProductResponse(res.Product)}
	if res.Movement != nil {
		mv := dto.ToMovementResponse(res.Movement)
		out.Movement = &mv
	}
	return out
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Contiene en name o sku"
// @Param        category   query  string  false  "Categoría exacta"
// @Param        isActive   query  bool    false  "Filtrar por estado"
// @Param        lowStock   query  bool    false  "Solo quantity <= minQuantity"
// @Param        sortBy     query  string  false  "name, sku, quantity, minQuantity, category, createdAt, updatedAt"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.PageResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	p, err := h.uc.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

// Create godoc
// @Summary      Crear producto
// @Description  Si quantity > 0 registra un movimiento add con el stock inicial.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.CreateFromRequest(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stockChangeResponse(res))
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Cambia datos descriptivos (no la cantidad) y registra un movimiento edit.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.UpdateFromRequest(c.UserContext(), actor, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stockChangeResponse(res))
}

// Take godoc
// @Summary      Retirar stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.StockChangeRequest  true  "quantity > 0"
// @Success      200   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/take [post]
func (h *ProductHandler) Take(c *fiber.Ctx) error {
	return h.stockChange(c, h.uc.TakeFromRequest)
}

// Adjust godoc
// @Summary      Ajustar stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.StockChangeRequest  true  "quantity con signo"
// @Success      200   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust [post]
func (h *ProductHandler) Adjust(c *fiber.Ctx) error {
	return h.stockChange(c, h.uc.AdjustFromRequest)
}

type stockChangeFunc func(ctx context.Context, actor entity.Actor, id int64, in dto.StockChangeRequest) (*inventory.StockResult, error)

func (h *ProductHandler) stockChange(c *fiber.Ctx, fn stockChangeFunc) error {
	actor, _ := GetActor(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.StockChangeRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := fn(c.UserContext(), actor, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stockChangeResponse(res))
}

// SetActive godoc
// @Summary      Activar / desactivar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.SetActiveRequest  true  "isActive"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/activate [patch]
func (h *ProductHandler) SetActive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetActiveRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if in.IsActive == nil {
		return respondError(c, domain.InvalidInput("isActive is required"))
	}
	p, err := h.uc.SetActive(c.UserContext(), id, *in.IsActive)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos activos en low stock, del más urgente al menos urgente.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products/replenishment [get]
func (h *ProductHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
