package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo persistencia append-only de auditoría sobre PostgreSQL.
// Los snapshots old/new se guardan como JSONB. Este adaptador no expone
// update ni delete: las entradas son inmutables.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create agrega una entrada de auditoría.
func (r *AuditRepo) Create(ctx context.Context, entry *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, user_id, ts, table_name, record_id, action, old_values, new_values, changes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.UserID, entry.Timestamp, entry.TableName, entry.RecordID,
		entry.Action, entry.OldValues, entry.NewValues, entry.Changes,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List consulta el historial con filtros opcionales, ordenado por timestamp
// descendente.
func (r *AuditRepo) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditEntry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, cond+"$"+strconv.Itoa(len(args)))
	}
	if filter.TableName != "" {
		add("table_name = ", filter.TableName)
	}
	if filter.RecordID != "" {
		add("record_id = ", filter.RecordID)
	}
	if filter.Action != "" {
		add("action = ", filter.Action)
	}
	if filter.UserID != "" {
		add("user_id = ", filter.UserID)
	}
	if !filter.From.IsZero() {
		add("ts >= ", filter.From)
	}
	if !filter.To.IsZero() {
		add("ts <= ", filter.To)
	}

	query := `
		SELECT id, user_id, ts, table_name, record_id, action, old_values, new_values, changes
		FROM audit_entries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += " ORDER BY ts DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Timestamp, &e.TableName, &e.RecordID,
			&e.Action, &e.OldValues, &e.NewValues, &e.Changes); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
