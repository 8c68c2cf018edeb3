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

	"github.com/jhoicas/facturation-api/docs"
	appanalytics "github.com/jhoicas/facturation-api/internal/application/analytics"
	"github.com/jhoicas/facturation-api/internal/application/auth"
	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/application/drafts"
	"github.com/jhoicas/facturation-api/internal/application/usecase"
	"github.com/jhoicas/facturation-api/internal/bootstrap"
	inframail "github.com/jhoicas/facturation-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/facturation-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturation-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturation-api/internal/infrastructure/sqlite"
	infraxlsx "github.com/jhoicas/facturation-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/facturation-api/internal/interfaces/http"
	"github.com/jhoicas/facturation-api/pkg/config"
	"github.com/jhoicas/facturation-api/pkg/logger"
)

// @title                       Facturation API
// @version                     1.0
// @description                 Factures, reçus et suivi des paiements.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	settings, lineDefaults, err := bootstrap.BillingSettings(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("parámetros de facturación")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, settings.Retry)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	// Borradores: archivo SQLite local
	draftDB, err := sqlite.Open(ctx, cfg.Drafts.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Drafts.Path).Msg("almacén de borradores")
	}
	defer draftDB.Close()

	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	draftRepo := sqlite.NewDraftRepository(draftDB)

	// SMTP opcional: sin SMTP_HOST el envío responde 503
	var mailer billing.DocumentMailer
	if m := inframail.NewSMTPMailer(cfg.SMTP); m != nil {
		mailer = m
	} else {
		log.Warn().Msg("SMTP no configurado: envío de documentos deshabilitado")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(bootstrap.Letterhead(cfg.Billing))

	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, settings, log)
	paymentUC := billing.NewPaymentUseCase(txRunner, invoiceRepo, paymentRepo, settings, log)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, paymentRepo, pdfGenerator, mailer, settings, log)
	exportUC := billing.NewExportUseCase(invoiceRepo, infraxlsx.NewExporter(), settings)
	draftUC := drafts.NewDraftUseCase(draftRepo, invoiceUC, lineDefaults, settings, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, settings.Currency)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

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
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Facturation API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		DocumentUC:  pdfUC,
		ExportUC:    exportUC,
		DraftUC:     draftUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		AuthLimiter: httpRouter.NewIPRateLimiter(httpRouter.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}),
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
