package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

// Service evalúa la condición de stock bajo y construye la notificación.
// Resuelve nombre de producto/inventario con lookups mínimos por id, sin
// materializar el grafo de entidades.
type Service struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	hub           *Hub
	now           func() time.Time
}

// NewService construye el notificador de stock bajo.
func NewService(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository, hub *Hub) *Service {
	return &Service{inventoryRepo: inventoryRepo, productRepo: productRepo, hub: hub, now: time.Now}
}

// Evaluate devuelve la notificación si la entrada quedó en stock bajo
// (cantidad <= umbral mínimo) o nil si no aplica. Si los lookups de nombre
// fallan, degrada a usar los ids como nombre: la condición manda, no el adorno.
func (s *Service) Evaluate(ctx context.Context, entry *entity.StockEntry) *entity.LowStockNotification {
	if !entry.IsLowStock() {
		return nil
	}
	productName, sku := entry.ProductID, ""
	if product, err := s.productRepo.GetByID(ctx, entry.ProductID); err == nil && product != nil {
		productName, sku = product.Name, product.SKU
	}
	inventoryName := entry.InventoryID
	if inv, err := s.inventoryRepo.GetByID(ctx, entry.InventoryID); err == nil && inv != nil {
		inventoryName = inv.Name
	}
	return &entity.LowStockNotification{
		ProductID:        entry.ProductID,
		ProductName:      productName,
		SKU:              sku,
		CurrentQuantity:  entry.Quantity,
		MinStockQuantity: entry.MinStockQuantity,
		InventoryID:      entry.InventoryID,
		InventoryName:    inventoryName,
		Message: fmt.Sprintf("Stock bajo: %s en %s (%d unidades, mínimo %d)",
			productName, inventoryName, entry.Quantity, entry.MinStockQuantity),
		Timestamp: s.now().UTC(),
	}
}

// Broadcast difunde la notificación a todos los suscriptores actuales.
// Entrega best-effort: un suscriptor lento o desconectado nunca bloquea
// ni hace fallar la mutación que la originó.
func (s *Service) Broadcast(n *entity.LowStockNotification) {
	s.hub.Broadcast(n)
}
