package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// ProductResponse representación HTTP de un producto (colaborador de lectura).
type ProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}

// FromProduct mapea la entidad a su respuesta HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Price:    p.Price,
		IsActive: p.IsActive,
	}
}
