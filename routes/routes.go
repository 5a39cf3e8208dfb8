package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})

	api := app.Group("/api")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)
	auth.Get("/me", middleware.Protect, handlers.HandleGetMe)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.Protect, middleware.AdminRequired)
	admin.Get("/users", handlers.HandleListUsers)
	admin.Get("/users/pending", handlers.HandleListPendingUsers)
	admin.Post("/users/approve", handlers.HandleApproveUser)
	admin.Post("/users/reject", handlers.HandleRejectUser)
	admin.Post("/users/preapproved", handlers.HandleAddPreApprovedEmail)

	// --- Stock Routes ---
	stock := api.Group("/stock", middleware.Protect)
	stock.Get("/available", handlers.HandleGetAvailableStock)
	stock.Get("/out-of-stock", handlers.HandleGetOutOfStock)
	stock.Get("/:id", handlers.HandleGetStockByID)
	stock.Post("/", handlers.HandleAddStock)
	stock.Put("/:id", handlers.HandleUpdateStock)
	stock.Delete("/:id", handlers.HandleDeleteStock)

	// --- Sales Routes ---
	sales := api.Group("/sales", middleware.Protect)
	sales.Get("/", handlers.HandleGetSales)
	sales.Get("/analytics", handlers.HandleGetSalesAnalytics)

	// --- Expiry Routes ---
	api.Get("/expiring-soon", middleware.Protect, handlers.HandleGetExpiringSoon)
	api.Get("/expired", middleware.Protect, handlers.HandleGetExpired)

	// --- Report Routes ---
	reports := api.Group("/reports", middleware.Protect)
	reports.Get("/data", handlers.HandleGetReportData)
	reports.Get("/generate", handlers.HandleGenerateReport)
	reports.Get("/insights", middleware.AdminRequired, handlers.HandleGetReportInsights)
}
