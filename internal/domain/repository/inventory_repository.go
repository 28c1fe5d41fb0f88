package repository

import (
	"context"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// InventoryRepository puerto de lectura de inventarios (colaborador externo).
// GetByID devuelve (nil, nil) si el inventario no existe.
type InventoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	List(ctx context.Context) ([]*entity.Inventory, error)
}
