package dto

import (
	"time"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// CreateStockEntryRequest alta de un producto en el inventario de la ruta.
type CreateStockEntryRequest struct {
	ProductID        string `json:"product_id"`
	Quantity         int64  `json:"quantity"`
	MinStockQuantity int64  `json:"min_stock_quantity"`
}

// AdjustQuantityRequest delta para increase/decrease (debe ser > 0).
type AdjustQuantityRequest struct {
	Delta int64 `json:"delta"`
}

// SetQuantityRequest sobrescritura absoluta de la cantidad.
type SetQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// SetMinStockRequest sobrescritura del umbral mínimo.
type SetMinStockRequest struct {
	MinStockQuantity int64 `json:"min_stock_quantity"`
}

// StockEntryResponse representación HTTP de una entrada de stock.
type StockEntryResponse struct {
	ID               string    `json:"id"`
	InventoryID      string    `json:"inventory_id"`
	ProductID        string    `json:"product_id"`
	Quantity         int64     `json:"quantity"`
	MinStockQuantity int64     `json:"min_stock_quantity"`
	LowStock         bool      `json:"low_stock"`
	UpdatedAt        time.Time `json:"updated_at"`
	// AuditPending se marca cuando la mutación quedó confirmada pero su
	// registro de auditoría no pudo persistirse.
	AuditPending bool `json:"audit_pending,omitempty"`
}

// FromStockEntry mapea la entidad a su respuesta HTTP.
func FromStockEntry(e *entity.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:               e.ID,
		InventoryID:      e.InventoryID,
		ProductID:        e.ProductID,
		Quantity:         e.Quantity,
		MinStockQuantity: e.MinStockQuantity,
		LowStock:         e.IsLowStock(),
		UpdatedAt:        e.UpdatedAt,
	}
}

// LowStockNotificationResponse cuerpo serializado de una alerta de stock bajo
// (websocket y cola AMQP usan la misma forma).
type LowStockNotificationResponse struct {
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	SKU              string    `json:"sku"`
	CurrentQuantity  int64     `json:"current_quantity"`
	MinStockQuantity int64     `json:"min_stock_quantity"`
	InventoryID      string    `json:"inventory_id"`
	InventoryName    string    `json:"inventory_name"`
	Message          string    `json:"message"`
	Timestamp        time.Time `json:"timestamp"`
}

// FromNotification mapea la notificación a su forma serializable.
func FromNotification(n *entity.LowStockNotification) LowStockNotificationResponse {
	return LowStockNotificationResponse{
		ProductID:        n.ProductID,
		ProductName:      n.ProductName,
		SKU:              n.SKU,
		CurrentQuantity:  n.CurrentQuantity,
		MinStockQuantity: n.MinStockQuantity,
		InventoryID:      n.InventoryID,
		InventoryName:    n.InventoryName,
		Message:          n.Message,
		Timestamp:        n.Timestamp,
	}
}
