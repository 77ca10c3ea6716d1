package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
)

// MovementHandler ledger de movimientos y undo (admin).
type MovementHandler struct {
	stock  *inventory.StockUseCase
	ledger *inventory.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(stock *inventory.StockUseCase, ledger *inventory.LedgerUseCase) *MovementHandler {
	return &MovementHandler{stock: stock, ledger: ledger}
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId      query  int     false  "Producto"
// @Param        userId         query  int     false  "Usuario"
// @Param        operationType  query  string  false  "add, take, adjust, edit, undo"
// @Param        startDate      query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        endDate        query  string  false  "RFC3339 o YYYY-MM-DD (incluye el día completo)"
// @Param        search         query  string  false  "Contiene en details, productName o username"
// @Param        sortBy         query  string  false  "timestamp, id, productName, username, operationType, quantityChange"
// @Param        sortOrder      query  string  false  "asc | desc"  default(desc)
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.PageResponse[dto.MovementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := parseQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.ledger.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Undo godoc
// @Summary      Revertir un movimiento
// @Description  Solo add, take y adjust, una sola vez. Registra un movimiento undo.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.UndoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/undo [post]
func (h *MovementHandler) Undo(c *fiber.Ctx) error {
	actor, _ := GetActor(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.stock.Undo(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UndoResponse{
		Message:      "Operation undone successfully",
		UndoMovement: dto.ToMovementResponse(res.Movement),
		Product:      dto.ToProductResponse(res.Product),
	})
}
