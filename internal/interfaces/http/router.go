package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/billing"
	"github.com/tu-usuario/gestion-pro/internal/application/sales"
	"github.com/tu-usuario/gestion-pro/internal/application/superadmin"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
	"github.com/tu-usuario/gestion-pro/internal/domain/policy"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	SalesUC        *sales.SalesUseCase
	BillingUC      *billing.BillingUseCase
	PDFUC          *billing.PDFUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	UserUC         *usecase.UserUseCase
	CompanyUC      *usecase.CompanyUseCase
	AuditUC        *usecase.AuditUseCase
	AnnouncementUC *usecase.AnnouncementUseCase
	NotificationUC *usecase.NotificationUseCase
	TicketUC       *usecase.TicketUseCase
	ReportUC       *usecase.ReportUseCase
	AIUC           *usecase.AIUseCase
	SuperAdminUC   *superadmin.SuperAdminUseCase

	UserRepo       repository.UserRepository
	SuperAdminRepo repository.SuperAdminRepository

	JWTSecret        string
	JWTIssuer        string
	SuperAdminSecret string
	SuperAdminIssuer string

	// Env entorno de la app (development/production); en producción los 500
	// no devuelven el detalle del error al cliente.
	Env string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	ConfigureErrorMode(deps.Env)

	api := app.Group("/api")

	// Auth de tenant (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Consola de plataforma. Va registrada ANTES del grupo de tenant: el
	// middleware de tenant cuelga de /api/ y aplicaría a todo lo posterior.
	saHandler := NewSuperAdminHandler(deps.SuperAdminUC)
	api.Post("/superadmin/login", saHandler.Login)
	sa := api.Group("/superadmin", SuperAdminMiddleware(deps.SuperAdminSecret, deps.SuperAdminIssuer, deps.SuperAdminRepo))
	sa.Get("/companies", saHandler.ListCompanies)
	sa.Get("/companies/:id", saHandler.GetCompany)
	sa.Post("/companies/:id/approve", saHandler.ApproveCompany)
	sa.Post("/companies/:id/reject", saHandler.RejectCompany)
	sa.Post("/companies/:id/suspend", saHandler.SuspendCompany)
	sa.Post("/companies/:id/reactivate", saHandler.ReactivateCompany)
	sa.Post("/companies/:id/block", saHandler.BlockCompany)
	sa.Post("/companies/:id/ban", saHandler.BanCompany)
	sa.Delete("/companies/:id", saHandler.DeleteCompany)
	sa.Get("/stats", saHandler.PlatformStats)
	sa.Post("/announcements", saHandler.CreateAnnouncement)
	sa.Get("/announcements", saHandler.ListAnnouncements)
	sa.Put("/announcements/:id", saHandler.UpdateAnnouncement)
	sa.Delete("/announcements/:id", saHandler.DeleteAnnouncement)
	sa.Get("/tickets", saHandler.ListTickets)
	sa.Get("/tickets/:id", saHandler.GetTicket)
	sa.Post("/tickets/:id/reply", saHandler.ReplyTicket)
	sa.Patch("/tickets/:id/status", saHandler.UpdateTicketStatus)
	sa.Get("/audit", saHandler.ListAuditLogs)

	// Descarga del PDF de factura. Es la ÚNICA ruta que acepta el token por
	// query param (el navegador no puede poner headers en una descarga), así
	// que lleva su propio middleware y va antes del grupo de tenant.
	invoiceHandler := NewInvoiceHandler(deps.BillingUC, deps.PDFUC)
	api.Get("/invoices/:id/pdf",
		DownloadAuthMiddleware(deps.JWTSecret, deps.JWTIssuer, deps.UserRepo),
		RequireTenant(),
		RequirePermission(policy.InvoicesRead),
		invoiceHandler.DownloadPDF,
	)

	// Rutas de tenant (Bearer + releído de usuario + tenant resuelto)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer, deps.UserRepo), RequireTenant())

	// Sesión actual
	protected.Get("/auth/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission(policy.ProductsWrite), productHandler.Create)
	products.Get("/", RequirePermission(policy.ProductsRead), productHandler.List)
	products.Get("/low-stock", RequirePermission(policy.ProductsRead), productHandler.ListLowStock)
	products.Get("/:id", RequirePermission(policy.ProductsRead), productHandler.GetByID)
	products.Put("/:id", RequirePermission(policy.ProductsWrite), productHandler.Update)
	products.Delete("/:id", RequirePermission(policy.ProductsWrite), productHandler.Delete)
	products.Post("/:id/adjust-stock", RequirePermission(policy.ProductsWrite), productHandler.AdjustStock)
	products.Get("/:id/movements", RequirePermission(policy.ProductsRead), productHandler.ListMovements)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", RequirePermission(policy.CustomersWrite), customerHandler.Create)
	customers.Get("/", RequirePermission(policy.CustomersRead), customerHandler.List)
	customers.Get("/:id", RequirePermission(policy.CustomersRead), customerHandler.GetByID)
	customers.Put("/:id", RequirePermission(policy.CustomersWrite), customerHandler.Update)
	customers.Delete("/:id", RequirePermission(policy.CustomersWrite), customerHandler.Delete)

	// Sales y returns
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", RequirePermission(policy.SalesWrite), saleHandler.Create)
	salesGroup.Get("/", RequirePermission(policy.SalesRead), saleHandler.List)
	salesGroup.Get("/:id", RequirePermission(policy.SalesRead), saleHandler.GetByID)
	returns := protected.Group("/returns")
	returns.Post("/", RequirePermission(policy.ReturnsWrite), saleHandler.CreateReturn)
	returns.Get("/", RequirePermission(policy.ReturnsRead), saleHandler.ListReturns)
	returns.Get("/:id", RequirePermission(policy.ReturnsRead), saleHandler.GetReturn)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.Post("/", RequirePermission(policy.InvoicesWrite), invoiceHandler.Issue)
	invoices.Get("/", RequirePermission(policy.InvoicesRead), invoiceHandler.List)
	invoices.Get("/:id", RequirePermission(policy.InvoicesRead), invoiceHandler.GetByID)
	invoices.Patch("/:id/status", RequirePermission(policy.InvoicesWrite), invoiceHandler.UpdateStatus)

	// Expenses
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", RequirePermission(policy.ExpensesWrite), expenseHandler.Create)
	expenses.Get("/", RequirePermission(policy.ExpensesRead), expenseHandler.List)
	expenses.Get("/:id", RequirePermission(policy.ExpensesRead), expenseHandler.GetByID)
	expenses.Put("/:id", RequirePermission(policy.ExpensesWrite), expenseHandler.Update)
	expenses.Delete("/:id", RequirePermission(policy.ExpensesWrite), expenseHandler.Delete)

	// Users (gestión interna, solo admin)
	users := protected.Group("/users", RequirePermission(policy.UsersManage))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Company, auditoría y comunicados visibles
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.AuditUC, deps.AnnouncementUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", RequirePermission(policy.CompanyManage), companyHandler.Update)
	protected.Get("/company/audit", RequirePermission(policy.AuditRead), companyHandler.ListAudit)
	protected.Get("/announcements", companyHandler.ListAnnouncements)

	// Notifications (del propio usuario, sin permiso extra)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Tickets de soporte
	tickets := protected.Group("/tickets", RequirePermission(policy.TicketsWrite))
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Post("/:id/reply", ticketHandler.Reply)
	tickets.Post("/:id/close", ticketHandler.Close)

	// Reports y dashboard
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports", RequirePermission(policy.ReportsRead))
	reports.Get("/sales-summary", reportHandler.SalesSummary)
	reports.Get("/sales-by-day", reportHandler.SalesByDay)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/expenses-by-category", reportHandler.ExpensesByCategory)
	protected.Get("/dashboard", reportHandler.Dashboard)

	// AI: insight del período y chat sobre las mismas cifras
	aiHandler := NewAIHandler(deps.AIUC)
	protected.Get("/ai/insights", RequirePermission(policy.ReportsRead), aiHandler.BusinessInsight)
	protected.Post("/ai/chat", RequirePermission(policy.ReportsRead), aiHandler.Chat)
}
