package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// Locals keys en Fiber.
const (
	LocalActor     = "actor"
	LocalRequestID = "requestid"
)

// ActorResolver valida el token y devuelve el actor vigente. Lo implementa *auth.AuthUseCase.
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (entity.Actor, error)
}

// AuthMiddleware valida el Bearer Token JWT, recarga el usuario y deja el actor en c.Locals.
func AuthMiddleware(resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		actor, err := resolver.ResolveActor(c.UserContext(), tokenString)
		if err != nil {
			if domain.Kind(err) == domain.ErrUnauthorized {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: domain.Message(err)})
			}
			return respondError(c, err)
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// RequireRole corta con 403 si el actor no tiene el rol. Usar después de AuthMiddleware.
func RequireRole(role entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := GetActor(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"})
		}
		if !actor.Can(role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: string(role) + " role required"})
		}
		return c.Next()
	}
}

// GetActor devuelve el actor autenticado (después del middleware de auth).
func GetActor(c *fiber.Ctx) (entity.Actor, bool) {
	actor, ok := c.Locals(LocalActor).(entity.Actor)
	return actor, ok
}
