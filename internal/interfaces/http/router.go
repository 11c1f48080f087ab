package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpcardenas/ordenes-api/internal/application/analytics"
	"github.com/jpcardenas/ordenes-api/internal/application/distorder"
	"github.com/jpcardenas/ordenes-api/internal/application/kitsale"
	"github.com/jpcardenas/ordenes-api/internal/application/orders"
	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	KitUC         *usecase.KitUseCase
	DistributorUC *usecase.DistributorUseCase
	StockAccessor *stock.Accessor
	KitSaleUC     *kitsale.UseCase
	DistOrderUC   *distorder.UseCase
	OrderUC       *orders.UseCase
	AnalyticsUC   *analytics.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token). Las lecturas quedan abiertas
	// a cualquier rol autenticado; las mutaciones exigen rol.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(RoleAdmin)
	sellers := RequireRole(RoleAdmin, RoleVendedor)
	collectors := RequireRole(RoleAdmin, RoleCobrador)

	// Products y variaciones (protegido)
	productHandler := NewProductHandler(deps.ProductUC, deps.StockAccessor)
	products := protected.Group("/products")
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Post("/:id/variations", adminOnly, productHandler.CreateVariation)

	variations := protected.Group("/variations")
	variations.Get("/:id", productHandler.GetVariation)
	variations.Put("/:id", adminOnly, productHandler.UpdateVariation)
	variations.Post("/:id/adjust-stock", adminOnly, productHandler.AdjustStock)
	variations.Get("/:id/stock-history", productHandler.StockHistory)

	// Kits y ventas de kit (protegido)
	kitHandler := NewKitHandler(deps.KitUC, deps.KitSaleUC)
	kits := protected.Group("/kits")
	kits.Post("/", adminOnly, kitHandler.Create)
	kits.Get("/", kitHandler.List)
	kits.Get("/:id", kitHandler.GetByID)
	kits.Put("/:id", adminOnly, kitHandler.Update)
	kits.Delete("/:id", adminOnly, kitHandler.Delete)

	kitSales := protected.Group("/kit-sales")
	kitSales.Post("/", sellers, kitHandler.CreateSale)
	kitSales.Get("/", kitHandler.ListSales)

	// Distribuidores y pedidos de reposición (protegido)
	distributorHandler := NewDistributorHandler(deps.DistributorUC, deps.DistOrderUC)
	distributors := protected.Group("/distributors")
	distributors.Post("/", adminOnly, distributorHandler.Create)
	distributors.Get("/", distributorHandler.List)
	distributors.Get("/:id", distributorHandler.GetByID)
	distributors.Put("/:id", adminOnly, distributorHandler.Update)
	distributors.Delete("/:id", adminOnly, distributorHandler.Delete)

	distOrders := protected.Group("/distributor-orders")
	distOrders.Post("/", adminOnly, distributorHandler.CreateOrder)
	distOrders.Get("/", distributorHandler.ListOrders)
	distOrders.Get("/:id", distributorHandler.GetOrder)
	distOrders.Put("/:id", adminOnly, distributorHandler.UpdateOrder)
	distOrders.Post("/:id/complete", adminOnly, distributorHandler.CompleteOrder)

	// Pedidos de cliente y cobranzas (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", sellers, orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/search", orderHandler.Search)
	ordersGroup.Get("/duplicates", orderHandler.Duplicates)
	ordersGroup.Post("/detect-duplicates", adminOnly, orderHandler.DetectDuplicates)
	ordersGroup.Get("/statistics", orderHandler.Statistics)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", sellers, orderHandler.Update)
	ordersGroup.Post("/:id/billing", collectors, orderHandler.AddBilling)
	ordersGroup.Get("/:id/statement.pdf", orderHandler.Statement)

	// Reportes (protegido)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup := protected.Group("/analytics")
	analyticsGroup.Get("/low-stock", analyticsHandler.LowStock)
	analyticsGroup.Get("/sales", analyticsHandler.Sales)
	analyticsGroup.Get("/inventory", analyticsHandler.Inventory)
}
