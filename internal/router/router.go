package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Masai2005/zero-app/internal/config"
	"github.com/Masai2005/zero-app/internal/handler"
	"github.com/Masai2005/zero-app/internal/ledger"
	"github.com/Masai2005/zero-app/internal/middleware"
	"github.com/Masai2005/zero-app/internal/model"
	"github.com/Masai2005/zero-app/internal/repository"
	"github.com/Masai2005/zero-app/internal/service"
	"github.com/Masai2005/zero-app/internal/storage"
	"github.com/Masai2005/zero-app/internal/txn"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Coordinator/Ledger ← Repository ← Store
func New(cfg *config.Config, store *storage.Store) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	ids := storage.NewIDGenerator()

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(store)
	productRepo := repository.NewProductRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	saleRepo := repository.NewSaleRepository(store)
	paymentRepo := repository.NewPaymentRepository(store)
	movementRepo := repository.NewMovementRepository(store)
	expenseRepo := repository.NewExpenseRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)

	// ── Core engines ─────────────────────────────────────────────────────────
	eng := ledger.NewEngine(saleRepo, paymentRepo, movementRepo, customerRepo, productRepo)
	coordinator := txn.NewCoordinator(productRepo, saleRepo, movementRepo, ids, log.Logger, nil)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, eng, ids)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo, eng, ids)
	saleSvc := service.NewSaleService(coordinator, saleRepo, productRepo, customerRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, customerRepo, eng, ids)
	inventorySvc := service.NewInventoryService(coordinator, movementRepo, eng)
	expenseSvc := service.NewExpenseService(expenseRepo, ids)
	notificationSvc := service.NewNotificationService(notificationRepo, productRepo, saleRepo, ids, log.Logger)
	settingsSvc := service.NewSettingsService(settingsRepo)
	reportSvc := service.NewReportService(saleRepo, expenseRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc, inventorySvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	salesH := handler.NewSalesHandler(saleSvc, saleRepo, cfg)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	notificationsH := handler.NewNotificationsHandler(notificationSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	reportsH := handler.NewReportsHandler(reportSvc, cfg)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(cfg.DataDir))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.UserTypeAdmin, model.UserTypeSalesman)
	adminOnly := middleware.RequireRole(model.UserTypeAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.Get)
		v1.GET("/products/:id/movements", anyRole, productsH.Movements)
		v1.GET("/products/:id/consistency", anyRole, productsH.Consistency)
		products := v1.Group("/products", adminOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		inv := v1.Group("/inventory", anyRole)
		{
			inv.POST("/movements", inventoryH.RecordMovement)
			inv.GET("/movements", inventoryH.ListMovements)
		}

		v1.GET("/customers", anyRole, customersH.List)
		v1.GET("/customers/balances", anyRole, customersH.AllBalances)
		v1.GET("/customers/:id", anyRole, customersH.Get)
		v1.GET("/customers/:id/balance", anyRole, customersH.Balance)
		v1.GET("/customers/:id/payments", anyRole, customersH.Payments)
		v1.POST("/customers", anyRole, customersH.Create)
		v1.PUT("/customers/:id", anyRole, customersH.Update)
		v1.DELETE("/customers/:id", adminOnly, customersH.Delete)

		v1.POST("/sales", anyRole, salesH.Complete)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.Get)
		v1.GET("/sales/:id/receipt.pdf", anyRole, salesH.Receipt)

		v1.POST("/payments", anyRole, paymentsH.Record)

		v1.GET("/expenses", anyRole, expensesH.List)
		v1.POST("/expenses", anyRole, expensesH.Create)
		v1.PUT("/expenses/:id", anyRole, expensesH.Update)
		v1.DELETE("/expenses/:id", adminOnly, expensesH.Delete)

		notif := v1.Group("/notifications", anyRole)
		{
			notif.GET("", notificationsH.List)
			notif.POST("/generate", notificationsH.Generate)
			notif.PATCH("/:id/read", notificationsH.MarkRead)
			notif.PATCH("/read-all", notificationsH.MarkAllRead)
		}

		reports := v1.Group("/reports", adminOnly)
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/sales.xlsx", reportsH.SalesXLSX)
		}

		v1.GET("/settings", anyRole, settingsH.Get)
		v1.PUT("/settings", adminOnly, settingsH.Update)
		v1.POST("/settings/backup", adminOnly, settingsH.MarkBackup)

		users := v1.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:username", authH.UpdateUser)
			users.DELETE("/:username", authH.DeleteUser)
		}
	}

	return r
}
