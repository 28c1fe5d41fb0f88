package entity

import "time"

// Roles de usuario. El admin global puede mutar cualquier inventario;
// el manager solo los inventarios con asignación explícita.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// User actor autenticado de la aplicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InventoryAssignment asigna un usuario como gestor de un inventario concreto.
type InventoryAssignment struct {
	UserID      string
	InventoryID string
	Role        string // manager | admin
	CreatedAt   time.Time
}
