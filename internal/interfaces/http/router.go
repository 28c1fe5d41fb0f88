package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-core/internal/application/audit"
	"github.com/tu-usuario/stock-core/internal/application/auth"
	"github.com/tu-usuario/stock-core/internal/application/notify"
	"github.com/tu-usuario/stock-core/internal/application/stock"
	"github.com/tu-usuario/stock-core/internal/application/usecase"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC   *stock.UseCase
	ProductUC *usecase.ProductUseCase
	AuthUC    *auth.AuthUseCase
	Recorder  *audit.Recorder
	Hub       *notify.Hub
	JWTSecret string
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

	// Products (protegido, solo lectura)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)

	// Stock (protegido; la autorización por inventario la decide el motor)
	stockHandler := NewStockHandler(deps.StockUC)
	inventories := protected.Group("/inventories/:inventoryId")
	inventories.Get("/stock", stockHandler.ListByInventory)
	inventories.Post("/stock", stockHandler.CreateEntry)
	inventories.Get("/stock/:productId", stockHandler.GetEntry)
	inventories.Put("/stock/:productId", stockHandler.SetQuantity)
	inventories.Delete("/stock/:productId", stockHandler.RemoveEntry)
	inventories.Post("/stock/:productId/increase", stockHandler.IncreaseQuantity)
	inventories.Post("/stock/:productId/decrease", stockHandler.DecreaseQuantity)
	inventories.Put("/stock/:productId/min-stock", stockHandler.SetMinStock)

	// Auditoría (protegido, solo admin)
	auditHandler := NewAuditHandler(deps.Recorder)
	protected.Get("/audit", RequireRole(entity.RoleAdmin), auditHandler.List)

	// Stream de alertas de stock bajo (websocket, protegido)
	protected.Get("/notifications/stream", WebsocketUpgrade(), NotificationStream(deps.Hub))
}
