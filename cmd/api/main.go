package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cafeteria-api/internal/application/cafe"
	"github.com/jhoicas/Cafeteria-api/internal/application/inventory"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/lock"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Cafeteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cafeteria-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/Cafeteria-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Cafeteria-api/internal/interfaces/http"
	"github.com/jhoicas/Cafeteria-api/pkg/config"
	"github.com/jhoicas/Cafeteria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repos cafe.Repositories
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		repos = memoryRepositories(memory.New())
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
		}
		repos = postgresRepositories(pool)
	}

	var locker inventory.Locker = lock.NewLocalLocker()
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Lock, log)
		log.Info().Str("addr", cfg.Redis.Address).Msg("bloqueos por insumo en Redis")
	}

	svc := cafe.New(repos, locker, log)
	reports := cafe.NewReports(svc, infrapdf.NewMarotoPDFGenerator(), infraxlsx.NewPriceHistoryExporter(), cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cafetería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Cafe:    svc,
		Reports: reports,
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

	log.Info().Msg("aplicación detenida")
}

func memoryRepositories(st *memory.Store) cafe.Repositories {
	return cafe.Repositories{
		TxRunner:    st.TxRunner(),
		Items:       st.InventoryItems(),
		Ledger:      st.StockChanges(),
		Menus:       st.Menus(),
		Recipes:     st.Recipes(),
		Estimates:   st.PriceEstimates(),
		Suppliers:   st.Suppliers(),
		CostSources: st.CostSources(),
		Forecasts:   st.SalesForecasts(),
	}
}

func postgresRepositories(pool *pgxpool.Pool) cafe.Repositories {
	return cafe.Repositories{
		TxRunner:    postgres.NewTxRunner(pool),
		Items:       postgres.NewInventoryItemRepository(pool),
		Ledger:      postgres.NewStockChangeRepository(pool),
		Menus:       postgres.NewMenuRepository(pool),
		Recipes:     postgres.NewRecipeRepository(pool),
		Estimates:   postgres.NewPriceEstimateRepository(pool),
		Suppliers:   postgres.NewSupplierRepository(pool),
		CostSources: postgres.NewCostSourceRepository(pool),
		Forecasts:   postgres.NewSalesForecastRepository(pool),
	}
}
