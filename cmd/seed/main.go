// seed carga los usuarios (admin/admin123, user/user123) y productos de demostración.
//
// Uso: go run ./cmd/seed
// Usa la misma configuración que la API (DATABASE_URL, DB_*). Aplica las migraciones antes.
package main

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockroom-api/internal/seed"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := postgres.NewUserRepository(pool)
	products := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	res, err := seed.Run(ctx, seed.Deps{
		Users:    users,
		Products: products,
		UserUC:   usecase.NewUserUseCase(txRunner, users),
		StockUC:  inventory.NewStockUseCase(txRunner, products),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int("users", res.Users).Int("products", res.Products).Msg("seed completado")
}
