package dto

import (
	"time"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// AuditListRequest filtros de consulta del historial (query params).
type AuditListRequest struct {
	TableName string `query:"table"`
	RecordID  string `query:"record_id"`
	Action    string `query:"action"`
	UserID    string `query:"user_id"`
	From      string `query:"from"` // RFC3339
	To        string `query:"to"`   // RFC3339
	PageRequest
}

// AuditEntryResponse representación HTTP de una entrada de auditoría.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	TableName string         `json:"table_name"`
	RecordID  string         `json:"record_id"`
	Action    string         `json:"action"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	Changes   string         `json:"changes,omitempty"`
}

// FromAuditEntry mapea la entidad a su respuesta HTTP.
func FromAuditEntry(e *entity.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Timestamp: e.Timestamp,
		TableName: e.TableName,
		RecordID:  e.RecordID,
		Action:    e.Action,
		OldValues: e.OldValues,
		NewValues: e.NewValues,
		Changes:   e.Changes,
	}
}
