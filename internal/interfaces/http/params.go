package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/domain"
)

// paramID lee el parámetro de ruta como ID positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidInput(name + " must be a positive integer")
	}
	return id, nil
}

// parseBody decodifica JSON; un body inválido es InvalidInput.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.InvalidInput("invalid request body")
	}
	return nil
}

// parseQuery decodifica los query params en out (tags `query`).
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.InvalidInput("invalid query parameters")
	}
	return nil
}
