package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-core/internal/domain"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

// Recorder agrega entradas inmutables al historial de auditoría.
// Nunca rechaza por motivos de negocio: su único modo de fallo es que el
// almacenamiento no esté disponible, y en ese caso no reintenta (la política
// de reconciliación vive en el caller).
type Recorder struct {
	repo repository.AuditRepository
	now  func() time.Time
}

// NewRecorder construye el recorder de auditoría.
func NewRecorder(repo repository.AuditRepository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

// Append asigna id y timestamp del lado del servidor, persiste la entrada
// y devuelve la forma persistida. Falla solo con domain.ErrUnavailable.
func (r *Recorder) Append(ctx context.Context, draft entity.AuditDraft) (*entity.AuditEntry, error) {
	entry := &entity.AuditEntry{
		ID:        uuid.New().String(),
		UserID:    draft.UserID,
		Timestamp: r.now().UTC(),
		TableName: draft.TableName,
		RecordID:  draft.RecordID,
		Action:    draft.Action,
		OldValues: draft.OldValues,
		NewValues: draft.NewValues,
		Changes:   draft.Changes,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: append auditoría: %v", domain.ErrUnavailable, err)
	}
	return entry, nil
}

// List consulta el historial con filtros; camino de solo lectura, fuera de la
// ruta de escritura de las mutaciones.
func (r *Recorder) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	entries, err := r.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: listar auditoría: %v", domain.ErrUnavailable, err)
	}
	return entries, nil
}
