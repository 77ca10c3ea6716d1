package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/analytics"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	StockUC         *inventory.StockUseCase
	LedgerUC        *inventory.LedgerUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	StatsUC         *analytics.StatsUseCase
	ReportUC        *analytics.ReportUseCase
	UserUC          *usecase.UserUseCase
	ServiceName     string
	Now             func() time.Time // nil = time.Now
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	api := app.Group("/api")

	// Health (público)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   deps.ServiceName,
			"timestamp": now().UTC().Format(time.RFC3339),
		})
	})

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	requireAuth := AuthMiddleware(deps.AuthUC)
	adminOnly := RequireRole(entity.RoleAdmin)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", requireAuth, authHandler.Me)

	// Products: lectura y take para cualquier usuario; el resto admin.
	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.StockUC, deps.ReplenishmentUC)
	products.Get("/", productHandler.List)
	products.Get("/replenishment", adminOnly, productHandler.Replenishment)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Post("/:id/take", productHandler.Take)
	products.Post("/:id/adjust", adminOnly, productHandler.Adjust)
	products.Patch("/:id/activate", adminOnly, productHandler.SetActive)

	// Movements (admin)
	movements := api.Group("/movements", requireAuth, adminOnly)
	movementHandler := NewMovementHandler(deps.StockUC, deps.LedgerUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/:id/undo", movementHandler.Undo)

	// Stats (admin)
	stats := api.Group("/stats", requireAuth, adminOnly)
	statsHandler := NewStatsHandler(deps.StatsUC, deps.ReportUC)
	stats.Get("/", statsHandler.GetStats)
	stats.Get("/report.pdf", statsHandler.ReportPDF)

	// Users: change-password para cualquier usuario; el resto admin.
	users := api.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/change-password", userHandler.ChangePassword)
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Post("/:id/reset-password", adminOnly, userHandler.ResetPassword)
}
