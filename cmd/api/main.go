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

	appanalytics "github.com/jhoicas/cs-portfolio/internal/application/analytics"
	"github.com/jhoicas/cs-portfolio/internal/application/auth"
	"github.com/jhoicas/cs-portfolio/internal/application/customers"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/backend"
	infraexcel "github.com/jhoicas/cs-portfolio/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/cs-portfolio/internal/infrastructure/pdf"
	"github.com/jhoicas/cs-portfolio/internal/infrastructure/sheets"
	httpRouter "github.com/jhoicas/cs-portfolio/internal/interfaces/http"
	"github.com/jhoicas/cs-portfolio/pkg/config"
	"github.com/jhoicas/cs-portfolio/pkg/logger"
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
		Str("backend", cfg.Sheets.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, closeStore, err := backend.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir hoja de clientes")
	}
	defer closeStore()

	gateway := sheets.NewGateway(store, cfg.Sheets.Worksheet, log)
	manager := customers.NewManager(gateway, log)
	// Carga inicial: si la hoja no responde se arranca en modo solo lectura.
	if err := manager.Reload(ctx); err != nil {
		log.Warn().Err(err).Msg("carga inicial de clientes fallida")
	}

	exportUC := customers.NewExportUseCase(manager, infraexcel.NewExporter(cfg.Sheets.Worksheet))
	dashboardUC := appanalytics.NewDashboardUseCase(manager, infrapdf.NewMarotoPDFGenerator(""))

	authUC, err := auth.NewAuthUseCase(auth.Credentials{
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar credencial compartida")
	}

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
		FilePath: cfg.HTTP.DocsPath,
		Path:     "docs",
		Title:    "CS Portfolio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Customers:    manager,
		EditSessions: customers.NewEditSessions(manager),
		ExportUC:     exportUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
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
