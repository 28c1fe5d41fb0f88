package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un colaborador externo del motor de stock; el motor resuelve
// nombre y SKU por id, sin materializar el grafo producto-categoría.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Description string
	Price       decimal.Decimal
	CategoryID  string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
