package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
)

type errorMapping struct {
	status int
	code   string
}

var errorKinds = map[error]errorMapping{
	domain.ErrInvalidInput: {fiber.StatusBadRequest, "VALIDATION"},
	domain.ErrNotFound:     {fiber.StatusNotFound, "NOT_FOUND"},
	domain.ErrConflict:     {fiber.StatusConflict, "CONFLICT"},
	domain.ErrUnauthorized: {fiber.StatusUnauthorized, "UNAUTHORIZED"},
	domain.ErrForbidden:    {fiber.StatusForbidden, "FORBIDDEN"},
	domain.ErrRateLimited:  {fiber.StatusTooManyRequests, "RATE_LIMITED"},
}

// respondError traduce el kind del error de dominio a status + dto.ErrorResponse.
// Los errores sin kind se registran y se devuelven opacos (500 INTERNAL).
func respondError(c *fiber.Ctx, err error) error {
	m, ok := errorKinds[domain.Kind(err)]
	if !ok {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Interface("request_id", c.Locals(LocalRequestID)).
			Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: domain.Message(err)})
	}
	return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: domain.Message(err)})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler para fiber.Config: errores que escapan de los handlers
// (404 de ruta, body demasiado grande, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		if fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
	}
	return respondError(c, err)
}
