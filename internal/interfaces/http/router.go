package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/application/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *ledger.Service
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	PartnerUC   *usecase.PartnerUseCase
	JWTSecret   string
	// Metrics expone /metrics si no es nil.
	Metrics prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Put("/:id", partnerHandler.Update)
	partners.Delete("/:id", partnerHandler.Delete)

	// Recepciones
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Ledger)
	invoices.Post("/", invoiceHandler.Receive)
	invoices.Get("/", invoiceHandler.List)

	// Traslados
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.Ledger)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Patch("/:id/status", movementHandler.UpdateStatus)

	// Pedidos
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Ledger)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/items", orderHandler.AddItem)
	orders.Delete("/:id/items/:productId", orderHandler.RemoveItem)
	orders.Post("/:id/approve", RequireRole(approverRoles...), orderHandler.Approve)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/pay", orderHandler.MarkPaid)
	orders.Put("/:id/delivery", orderHandler.SetDelivery)

	// Stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stock.Get("/", stockHandler.Quantity)
	stock.Get("/products/:id", stockHandler.ByProduct)
	stock.Get("/warehouses/:id", stockHandler.ByWarehouse)
}
