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

	"github.com/gruasdelsur/backoffice-api/internal/application/auth"
	"github.com/gruasdelsur/backoffice-api/internal/application/inventory"
	"github.com/gruasdelsur/backoffice-api/internal/application/usecase"
	infrapdf "github.com/gruasdelsur/backoffice-api/internal/infrastructure/pdf"
	"github.com/gruasdelsur/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/gruasdelsur/backoffice-api/internal/interfaces/http"
	"github.com/gruasdelsur/backoffice-api/pkg/config"
	"github.com/gruasdelsur/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	craneRepo := postgres.NewCraneRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)

	poster := inventory.NewMovementPoster(batchRepo, movementRepo, log)
	kardexUC := inventory.NewKardexUseCase(movementRepo, itemRepo)
	batchUC := inventory.NewBatchUseCase(batchRepo, movementRepo)

	// PDF: comprobante interno del movimiento de bodega
	voucherGen := infrapdf.NewMovementVoucherGenerator()
	voucherUC := inventory.NewVoucherUseCase(
		movementRepo, itemRepo, locationRepo, batchRepo, companyRepo, voucherGen,
	)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	craneUC := usecase.NewCraneUseCase(craneRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Grúas del Sur Back-office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:        companyUC,
		ItemUC:           itemUC,
		LocationUC:       locationUC,
		SupplierUC:       supplierUC,
		CraneUC:          craneUC,
		AuthUC:           authUC,
		Poster:           poster,
		KardexUC:         kardexUC,
		BatchUC:          batchUC,
		VoucherUC:        voucherUC,
		JWTSecret:        cfg.JWT.Secret,
		ExpiringSoonDays: cfg.Inventory.ExpiringSoonDays,
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
