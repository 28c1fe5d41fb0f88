package entity

import "time"

// LowStockNotification es un mensaje efímero (no persistido) que se
// difunde a los suscriptores cuando una entrada queda en stock bajo.
type LowStockNotification struct {
	ProductID        string
	ProductName      string
	SKU              string
	CurrentQuantity  int64
	MinStockQuantity int64
	InventoryID      string
	InventoryName    string
	Message          string
	Timestamp        time.Time
}

// Snapshot devuelve la notificación como mapa para el registro LOW_STOCK_ALERT.
func (n *LowStockNotification) Snapshot() map[string]any {
	return map[string]any{
		"product_id":         n.ProductID,
		"product_name":       n.ProductName,
		"sku":                n.SKU,
		"current_quantity":   n.CurrentQuantity,
		"min_stock_quantity": n.MinStockQuantity,
		"inventory_id":       n.InventoryID,
		"inventory_name":     n.InventoryName,
		"message":            n.Message,
	}
}
