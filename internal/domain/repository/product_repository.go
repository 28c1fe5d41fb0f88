package repository

import (
	"context"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// ProductRepository puerto de lectura de productos (colaborador externo).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Search busca por nombre o SKU, insensible a mayúsculas y acentos.
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.Product, error)
}
