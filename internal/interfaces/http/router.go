package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/internal/application/auth"
	"github.com/tu-usuario/cuentas-pro/internal/application/customers"
	"github.com/tu-usuario/cuentas-pro/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccountUC  *accounts.UseCase
	SaleUC     *sales.UseCase
	CustomerUC *customers.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes (protegido)
	customersGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Get("/:id", customerHandler.GetByID)

	// Ventas (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Cuentas corrientes (protegido)
	accountsGroup := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accountsGroup.Get("/", accountHandler.List)
	accountsGroup.Get("/stats", accountHandler.Stats)
	accountsGroup.Get("/debtors", accountHandler.Debtors)
	accountsGroup.Get("/overdue-alerts", accountHandler.OverdueAlerts)
	accountsGroup.Post("/recompute-overdue", RequireAdmin(), accountHandler.RecomputeOverdue)
	accountsGroup.Get("/:customerId", accountHandler.Get)
	accountsGroup.Put("/:customerId", RequireAdmin(), accountHandler.Update)
	accountsGroup.Post("/:customerId/suspend", RequireAdmin(), accountHandler.Suspend)
	accountsGroup.Post("/:customerId/activate", RequireAdmin(), accountHandler.Activate)
	accountsGroup.Get("/:customerId/statement", accountHandler.Statement)
	accountsGroup.Get("/:customerId/statement/pdf", accountHandler.StatementPDF)
	accountsGroup.Get("/:customerId/pending-transactions", accountHandler.PendingTransactions)
	accountsGroup.Post("/:customerId/charges", accountHandler.CreateCharge)
	accountsGroup.Post("/:customerId/payments", accountHandler.CreatePayment)
	accountsGroup.Post("/:customerId/surcharges", accountHandler.ApplySurcharge)
	accountsGroup.Post("/:customerId/adjustments", RequireAdmin(), accountHandler.CreateAdjustment)
	accountsGroup.Post("/:customerId/sync-charges", accountHandler.SyncCharges)
}
