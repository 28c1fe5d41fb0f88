package repository

import (
	"context"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
// Los Get devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AssignmentRepository puerto de lectura de asignaciones usuario-inventario.
type AssignmentRepository interface {
	// GetByUserAndInventory devuelve (nil, nil) si el usuario no tiene
	// asignación sobre ese inventario.
	GetByUserAndInventory(ctx context.Context, userID, inventoryID string) (*entity.InventoryAssignment, error)
}
