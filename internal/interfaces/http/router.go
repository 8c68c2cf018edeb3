package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      authService
	InvoiceUC   invoiceService
	PaymentUC   paymentService
	DocumentUC  documentService
	ExportUC    exportService
	DraftUC     draftService
	UserUC      userService
	DashboardUC dashboardService
	JWTSecret   string
	// AuthLimiter limita login y registro por IP; nil desactiva el límite.
	AuthLimiter *IPRateLimiter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	validator := NewBodyValidator()
	api := app.Group("/api")

	// Auth (público, con límite por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, validator)
	var limit []fiber.Handler
	if deps.AuthLimiter != nil {
		limit = append(limit, deps.AuthLimiter.Middleware())
	}
	authGroup.Post("/register", append(limit, authHandler.Register)...)
	authGroup.Post("/login", append(limit, authHandler.Login)...)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC, deps.ExportUC, validator)
	paymentHandler := NewPaymentHandler(deps.PaymentUC, validator)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Delete("/", adminOnly, invoiceHandler.DeleteAll)
	invoices.Get("/export", adminOnly, invoiceHandler.Export)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Post("/:id/payments", paymentHandler.Apply)
	invoices.Get("/:id/payments", paymentHandler.List)
	invoices.Post("/:id/settle", paymentHandler.Settle)

	// Drafts
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC, validator)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/", draftHandler.List)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Put("/:id", draftHandler.Update)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Post("/:id/items", draftHandler.AddItem)
	drafts.Put("/:id/items/:index", draftHandler.UpdateItem)
	drafts.Delete("/:id/items/:index", draftHandler.RemoveItem)
	drafts.Post("/:id/submit", draftHandler.Submit)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Users (admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC, validator)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:id", userHandler.Update)
}
