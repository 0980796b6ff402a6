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
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/billing"
	"github.com/tu-usuario/gestion-pro/internal/application/sales"
	"github.com/tu-usuario/gestion-pro/internal/application/superadmin"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
	infraai "github.com/tu-usuario/gestion-pro/internal/infrastructure/ai"
	infrapdf "github.com/tu-usuario/gestion-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestion-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/gestion-pro/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pro/pkg/config"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	returnRepo := postgres.NewSaleReturnRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	announcementRepo := postgres.NewAnnouncementRepository(pool)
	ticketRepo := postgres.NewSupportTicketRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	superAdminRepo := postgres.NewSuperAdminRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, userRepo)
	salesUC := sales.NewSalesUseCase(saleRepo, returnRepo, customerRepo, txRunner, notificationUC)
	billingUC := billing.NewBillingUseCase(invoiceRepo, txRunner)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, saleRepo, companyRepo, customerRepo, pdfGenerator)
	productUC := usecase.NewProductUseCase(productRepo, movementRepo, txRunner)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	announcementUC := usecase.NewAnnouncementUseCase(announcementRepo)
	ticketUC := usecase.NewTicketUseCase(ticketRepo)
	reportUC := usecase.NewReportUseCase(reportRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	aiUC := usecase.NewAIUseCase(anthropicSvc, reportRepo, companyRepo)

	superAdminUC := superadmin.NewSuperAdminUseCase(
		superAdminRepo, companyRepo, userRepo, notificationRepo,
		announcementRepo, ticketRepo, auditRepo, reportRepo,
		txRunner, superadmin.JWTConfig{
			Secret:     cfg.SuperAdmin.Secret,
			ExpMinutes: cfg.SuperAdmin.Expiration,
			Issuer:     cfg.SuperAdmin.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog()))
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: time.Duration(cfg.RateLimit.Seconds) * time.Second,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		CustomerUC:     customerUC,
		SalesUC:        salesUC,
		BillingUC:      billingUC,
		PDFUC:          pdfUC,
		ExpenseUC:      expenseUC,
		UserUC:         userUC,
		CompanyUC:      companyUC,
		AuditUC:        auditUC,
		AnnouncementUC: announcementUC,
		NotificationUC: notificationUC,
		TicketUC:       ticketUC,
		ReportUC:       reportUC,
		AIUC:           aiUC,
		SuperAdminUC:   superAdminUC,

		UserRepo:       userRepo,
		SuperAdminRepo: superAdminRepo,

		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		SuperAdminSecret: cfg.SuperAdmin.Secret,
		SuperAdminIssuer: cfg.SuperAdmin.Issuer,
		Env:              cfg.App.Env,
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
