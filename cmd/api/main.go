package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/clientes-pro/internal/application/auth"
	"github.com/tu-usuario/clientes-pro/internal/application/customers"
	"github.com/tu-usuario/clientes-pro/internal/application/imports"
	"github.com/tu-usuario/clientes-pro/internal/domain/repository"
	"github.com/tu-usuario/clientes-pro/internal/infrastructure/jsonfile"
	infrapdf "github.com/tu-usuario/clientes-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/clientes-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/clientes-pro/internal/interfaces/http"
	"github.com/tu-usuario/clientes-pro/pkg/config"
	"github.com/tu-usuario/clientes-pro/pkg/logger"
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
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		customerStore repository.CustomerStore
		userRepo      repository.UserRepository
	)
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		pgStore := postgres.NewCustomerStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de clientes")
		}
		pgUsers := postgres.NewUserRepository(pool)
		if err := pgUsers.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de usuarios")
		}
		customerStore = pgStore
		userRepo = pgUsers

	case config.StoreBackendFile:
		customerStore = jsonfile.NewCustomerStore(cfg.Store.FilePath)
		usersPath := filepath.Join(filepath.Dir(cfg.Store.FilePath), "users.json")
		fileUsers, err := jsonfile.NewUserRepo(usersPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cargar usuarios")
		}
		userRepo = fileUsers
	}

	customerUC, err := customers.NewCustomerUseCase(ctx, customerStore)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar población de clientes")
	}
	importUC := imports.NewImportUseCase(customerUC)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := customers.NewReportUseCase(customerUC, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "Clientes Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		ImportUC:   importUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
