package main

import (
	"log"
	"strings"

	"konfeksiyon-backend/internal/audit"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/clients"
	"konfeksiyon-backend/internal/config"
	"konfeksiyon-backend/internal/dashboard"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/finance"
	"konfeksiyon-backend/internal/hr"
	"konfeksiyon-backend/internal/inventory"
	"konfeksiyon-backend/internal/jobs"
	"konfeksiyon-backend/internal/models"
	"konfeksiyon-backend/internal/orders"
	"konfeksiyon-backend/internal/portal"
	"konfeksiyon-backend/internal/production"
	"konfeksiyon-backend/internal/routing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Kullanıcı yönetimi
	adminRoutes.Post("/users", auth.CreateUserHandler())
	adminRoutes.Get("/users", auth.ListUsersHandler())

	// İç kullanıcılar (portal müşterileri hariç)
	staff := protected.Group("")
	staff.Use(auth.RequireRole(models.RoleAdmin, models.RoleProduction, models.RoleFinance, models.RoleHR))

	// Müşteri kartları
	staff.Get("/clients", clients.ListClientsHandler())
	staff.Get("/clients/:id", clients.GetClientHandler())
	adminRoutes.Post("/clients", clients.CreateClientHandler())
	adminRoutes.Put("/clients/:id", clients.UpdateClientHandler())
	adminRoutes.Delete("/clients/:id", clients.DeleteClientHandler())

	// Sipariş yönetimi
	orderRoutes := protected.Group("")
	orderRoutes.Use(auth.RequireRole(models.RoleAdmin, models.RoleProduction))
	orderRoutes.Post("/orders", orders.CreateOrderHandler())
	orderRoutes.Put("/orders/:id", orders.UpdateOrderHandler())
	orderRoutes.Post("/orders/:id/status", orders.UpdateOrderStatusHandler())
	orderRoutes.Delete("/orders/:id", orders.DeleteOrderHandler())
	orderRoutes.Post("/orders/import-xlsx", orders.ImportOrdersHandler())
	staff.Get("/orders", orders.ListOrdersHandler())
	staff.Get("/orders/:id", orders.GetOrderHandler())

	// Rota şablonları
	orderRoutes.Post("/route-templates", routing.CreateTemplateHandler())
	orderRoutes.Put("/route-templates/:id", routing.UpdateTemplateHandler())
	orderRoutes.Delete("/route-templates/:id", routing.DeleteTemplateHandler())
	staff.Get("/route-templates", routing.ListTemplatesHandler())
	staff.Get("/route-templates/:id", routing.GetTemplateHandler())

	// Üretim: bohça ve operasyon takibi
	productionRoutes := protected.Group("")
	productionRoutes.Use(auth.RequireRole(models.RoleAdmin, models.RoleProduction))
	productionRoutes.Post("/bundles", production.CreateBundleHandler())
	productionRoutes.Post("/bundles/:id/cancel", production.CancelBundleHandler())
	productionRoutes.Post("/bundles/:id/operations/:opId/start", production.StartOperationHandler())
	productionRoutes.Post("/bundles/:id/operations/:opId/complete", production.CompleteOperationHandler())
	productionRoutes.Post("/bundles/:id/qc", production.CreateQCInspectionHandler())
	staff.Get("/orders/:id/bundles", production.ListBundlesHandler())
	staff.Get("/bundles/:id", production.GetBundleHandler())
	staff.Get("/bundles/:id/qc", production.ListQCInspectionsHandler())

	// Finans
	financeRoutes := protected.Group("")
	financeRoutes.Use(auth.RequireRole(models.RoleAdmin, models.RoleFinance))
	financeRoutes.Post("/invoices", finance.CreateInvoiceHandler())
	financeRoutes.Get("/invoices", finance.ListInvoicesHandler())
	financeRoutes.Get("/invoices/:id", finance.GetInvoiceHandler())
	financeRoutes.Post("/invoices/:id/payments", finance.CreatePaymentHandler())
	financeRoutes.Post("/invoices/:id/cancel", finance.CancelInvoiceHandler())
	financeRoutes.Get("/finance/aging", finance.AgingReportHandler())
	financeRoutes.Get("/finance/aging/export", finance.ExportAgingHandler())
	financeRoutes.Get("/finance/summary", finance.MonthlySummaryHandler())

	// İnsan kaynakları: çalışan ve hakediş
	hrRoutes := protected.Group("")
	hrRoutes.Use(auth.RequireRole(models.RoleAdmin, models.RoleHR))
	hrRoutes.Post("/employees", hr.CreateEmployeeHandler())
	hrRoutes.Put("/employees/:id", hr.UpdateEmployeeHandler())
	hrRoutes.Get("/employees/:id/earnings", hr.EmployeeEarningsHandler())
	staff.Get("/employees", hr.ListEmployeesHandler())

	// Depo: malzeme ve stok hareketleri
	inventoryRoutes := protected.Group("")
	inventoryRoutes.Use(auth.RequireRole(models.RoleAdmin, models.RoleProduction))
	inventoryRoutes.Post("/materials", inventory.CreateMaterialHandler())
	inventoryRoutes.Put("/materials/:id", inventory.UpdateMaterialHandler())
	inventoryRoutes.Delete("/materials/:id", inventory.DeleteMaterialHandler())
	inventoryRoutes.Post("/stock-entries", inventory.CreateStockEntryHandler())
	staff.Get("/materials", inventory.ListMaterialsHandler())
	staff.Get("/stock-entries", inventory.ListStockEntriesHandler())
	staff.Get("/inventory/usage", inventory.MonthlyUsageHandler())

	// Dashboard
	staff.Get("/dashboard/production-chart", dashboard.ProductionChartHandler())
	staff.Get("/dashboard/overview", dashboard.OverviewHandler())

	// Müşteri portalı (sadece client rolü, kendi siparişleri)
	portalRoutes := protected.Group("/portal")
	portalRoutes.Use(auth.RequireRole(models.RoleClient))
	portalRoutes.Get("/orders", portal.ListMyOrdersHandler())
	portalRoutes.Get("/orders/:id", portal.GetMyOrderHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())
	adminRoutes.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	// Günlük arka plan işleri (vade kontrolü, bekleyen bohça uyarısı)
	scheduler, err := jobs.Start(cfg)
	if err != nil {
		log.Fatal("Arka plan işleri başlatılamadı:", err)
	}
	defer func() { _ = scheduler.Shutdown() }()

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
