package stock

import (
	"context"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// Authorizer decide si un actor puede mutar el stock de un inventario.
// Implementado por authz.Gate.
type Authorizer interface {
	IsAuthorized(ctx context.Context, userID *string, inventoryID string) (bool, error)
}

// AuditRecorder agrega entradas inmutables de auditoría.
// Implementado por audit.Recorder.
type AuditRecorder interface {
	Append(ctx context.Context, draft entity.AuditDraft) (*entity.AuditEntry, error)
}

// LowStockNotifier evalúa la condición de stock bajo y difunde la alerta.
// Implementado por notify.Service.
type LowStockNotifier interface {
	Evaluate(ctx context.Context, entry *entity.StockEntry) *entity.LowStockNotification
	Broadcast(n *entity.LowStockNotification)
}
