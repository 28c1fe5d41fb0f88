package entity

import "time"

// StockEntry representa la cantidad de un producto dentro de un inventario.
// Existe como máximo una entrada por par (inventario, producto) y la
// cantidad nunca puede ser negativa.
type StockEntry struct {
	ID               string
	InventoryID      string
	ProductID        string
	Quantity         int64
	MinStockQuantity int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLowStock indica si la entrada está en condición de stock bajo
// (cantidad actual menor o igual al umbral mínimo).
func (e *StockEntry) IsLowStock() bool {
	return e.Quantity <= e.MinStockQuantity
}

// Snapshot devuelve una copia plana de la entrada para registros de auditoría.
func (e *StockEntry) Snapshot() map[string]any {
	return map[string]any{
		"id":                 e.ID,
		"inventory_id":       e.InventoryID,
		"product_id":         e.ProductID,
		"quantity":           e.Quantity,
		"min_stock_quantity": e.MinStockQuantity,
	}
}
