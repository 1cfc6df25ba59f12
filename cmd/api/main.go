package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/internal/application/auth"
	"github.com/tu-usuario/cuentas-pro/internal/application/customers"
	"github.com/tu-usuario/cuentas-pro/internal/application/sales"
	infracash "github.com/tu-usuario/cuentas-pro/internal/infrastructure/cash"
	infrapdf "github.com/tu-usuario/cuentas-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/cuentas-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/cuentas-pro/internal/interfaces/http"
	"github.com/tu-usuario/cuentas-pro/internal/jobs"
	"github.com/tu-usuario/cuentas-pro/pkg/config"
	"github.com/tu-usuario/cuentas-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	accountRepo := postgres.NewAccountRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	incomeRepo := postgres.NewIncomeRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	cashRepo := postgres.NewCashRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	cashService := infracash.NewService(cashRepo)
	statementPDF := infrapdf.NewMarotoStatementGenerator(cfg.App.Name)

	accountUC := accounts.NewUseCase(
		txRunner, accountRepo, movementRepo, saleRepo, incomeRepo,
		customerRepo, cashService, statementPDF, log,
	)
	saleUC := sales.NewUseCase(txRunner, saleRepo, customerRepo, log)
	customerUC := customers.NewUseCase(customerRepo, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)

	// Recálculo diario de mora
	if cfg.Jobs.OverdueEnabled {
		scheduler := jobs.NewOverdueScheduler(accountUC, cfg.Jobs.OverdueHour, log)
		go scheduler.Run(ctx)
	}

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
		Title:    "Cuentas Corrientes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccountUC:  accountUC,
		SaleUC:     saleUC,
		CustomerUC: customerUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
