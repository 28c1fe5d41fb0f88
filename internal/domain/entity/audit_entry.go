package entity

import "time"

// Tipos de acción auditables (vocabulario fijo).
const (
	AuditActionInsert           = "INSERT"
	AuditActionUpdate           = "UPDATE"
	AuditActionDelete           = "DELETE"
	AuditActionQuantityIncrease = "QUANTITY_INCREASE"
	AuditActionQuantityDecrease = "QUANTITY_DECREASE"
	AuditActionQuantitySet      = "QUANTITY_SET"
	AuditActionMinStockUpdate   = "MIN_STOCK_UPDATE"
	AuditActionLowStockAlert    = "LOW_STOCK_ALERT"
)

// AuditEntry es el registro inmutable de una acción que cambió estado.
// Una vez persistido nunca se modifica ni se borra desde este servicio.
type AuditEntry struct {
	ID        string
	UserID    *string // nil para acciones iniciadas por el sistema
	Timestamp time.Time
	TableName string
	RecordID  string
	Action    string
	OldValues map[string]any // nil si no había estado previo
	NewValues map[string]any // nil si la acción eliminó el registro
	Changes   string         // resumen libre del cambio (ej. "quantity 10 -> 4 (delta -6)")
}

// AuditDraft es la entrada que construyen los casos de uso; el recorder
// asigna ID y timestamp del lado del servidor al persistirla.
type AuditDraft struct {
	UserID    *string
	TableName string
	RecordID  string
	Action    string
	OldValues map[string]any
	NewValues map[string]any
	Changes   string
}
