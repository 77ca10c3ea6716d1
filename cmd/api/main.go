package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/stockroom-api/internal/application/analytics"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stockroom-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stockroom-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/stockroom-api/internal/interfaces/http"
	"github.com/jhoicas/stockroom-api/internal/jobs"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// stores repositorios y runners del driver elegido.
type stores struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	users     repository.UserRepository
	stats     repository.StatsRepository
	tx        interface {
		inventory.TxRunner
		usecase.UserTxRunner
	}
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer st.close()

	// Límite de intentos de login (opcional, Redis).
	var throttle auth.LoginThrottle
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, login sin límite de intentos")
		} else {
			defer client.Close()
			window := time.Duration(cfg.Login.WindowMinutes) * time.Minute
			throttle = infraredis.NewLoginLimiter(client, cfg.Login.MaxAttempts, window, log)
		}
	}

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, throttle)
	stockUC := inventory.NewStockUseCase(st.tx, st.products)
	ledgerUC := inventory.NewLedgerUseCase(st.movements)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.products)
	statsUC := analytics.NewStatsUseCase(st.stats)
	reportUC := analytics.NewReportUseCase(statsUC, st.products, infrapdf.NewMarotoPDFGenerator(), "Informe de stock")
	userUC := usecase.NewUserUseCase(st.tx, st.users)

	// Jobs periódicos
	scheduler, err := jobs.NewScheduler(log)
	if err != nil {
		log.Fatal().Err(err).Msg("crear scheduler")
	}
	lowStock := jobs.NewLowStockJob(replenishmentUC, log)
	interval := time.Duration(cfg.Jobs.LowStockIntervalMinutes) * time.Minute
	if err := scheduler.AddLowStockCheck(interval, lowStock); err != nil {
		log.Fatal().Err(err).Msg("registrar job de low stock")
	}
	scheduler.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en http://localhost:<port>/docs, solo si existe el archivo generado.
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Stockroom API",
			}))
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		StockUC:         stockUC,
		LedgerUC:        ledgerUC,
		ReplenishmentUC: replenishmentUC,
		StatsUC:         statsUC,
		ReportUC:        reportUC,
		UserUC:          userUC,
		ServiceName:     cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("apagado del scheduler")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria, los datos no persisten")
		m := memory.NewStore()
		return &stores{
			products:  m.Products(),
			movements: m.Movements(),
			users:     m.Users(),
			stats:     m.Stats(),
			tx:        m,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &stores{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		users:     postgres.NewUserRepository(pool),
		stats:     postgres.NewStatsRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
