package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// AuditFilter criterios de consulta del historial de auditoría (solo lectura).
type AuditFilter struct {
	TableName string
	RecordID  string
	Action    string
	UserID    string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// AuditRepository puerto de persistencia append-only de auditoría.
// Create nunca debe modificar ni borrar entradas existentes.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditEntry, error)
}
