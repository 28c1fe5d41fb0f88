package authz

import (
	"context"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

// Gate decide si un usuario puede mutar el stock de un inventario.
// Es una función de decisión pura sobre los datos de asignación: no muta nada.
type Gate struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

// NewGate construye la puerta de autorización.
func NewGate(userRepo repository.UserRepository, assignmentRepo repository.AssignmentRepository) *Gate {
	return &Gate{userRepo: userRepo, assignmentRepo: assignmentRepo}
}

// IsAuthorized responde si userID puede mutar el stock de inventoryID.
// Reglas: sin actor nunca se autoriza una mutación; el admin global accede a
// todos los inventarios; el resto necesita una asignación manager-o-admin
// sobre el inventario concreto.
func (g *Gate) IsAuthorized(ctx context.Context, userID *string, inventoryID string) (bool, error) {
	if userID == nil || *userID == "" {
		return false, nil
	}
	user, err := g.userRepo.GetByID(ctx, *userID)
	if err != nil {
		return false, err
	}
	if user == nil || user.Status != "active" {
		return false, nil
	}
	if user.Role == entity.RoleAdmin {
		return true, nil
	}
	assignment, err := g.assignmentRepo.GetByUserAndInventory(ctx, *userID, inventoryID)
	if err != nil {
		return false, err
	}
	if assignment == nil {
		return false, nil
	}
	return assignment.Role == entity.RoleManager || assignment.Role == entity.RoleAdmin, nil
}
