package entity

import "time"

// Inventory es un colaborador externo del motor de stock: el motor solo
// valida existencia/estado activo y resuelve el nombre para notificaciones.
type Inventory struct {
	ID        string
	Name      string
	Location  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
