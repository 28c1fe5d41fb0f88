package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-core/internal/domain"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
	"github.com/tu-usuario/stock-core/pkg/logger"
)

// Tabla auditada por este caso de uso.
const stockEntriesTable = "stock_entries"

// maxConditionalRetries intentos del update condicional ante conflicto de
// concurrencia; cada reintento relee la entrada antes de recalcular.
const maxConditionalRetries = 3

// UseCase es el motor de mutación de stock. Cada operación sigue el mismo
// contrato de orden: autorización, validación de existencia/invariantes,
// persistencia, auditoría y evaluación de stock bajo; el fallo de una etapa
// corta las siguientes. Auditoría y notificación ocurren después del commit
// del ledger y nunca lo revierten.
type UseCase struct {
	entries       repository.StockEntryRepository
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	gate          Authorizer
	recorder      AuditRecorder
	notifier      LowStockNotifier
	log           *logger.Logger
}

// NewUseCase construye el motor de stock.
func NewUseCase(
	entries repository.StockEntryRepository,
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	gate Authorizer,
	recorder AuditRecorder,
	notifier LowStockNotifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		entries:       entries,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		gate:          gate,
		recorder:      recorder,
		notifier:      notifier,
		log:           log,
	}
}

// CreateEntryInput datos para dar de alta un producto en un inventario.
type CreateEntryInput struct {
	InventoryID      string
	ProductID        string
	Quantity         int64
	MinStockQuantity int64
	Actor            *string
}

// CreateEntry crea la entrada de stock para un par (inventario, producto)
// que aún no existe. Valida que ambos colaboradores existan y estén activos.
func (uc *UseCase) CreateEntry(ctx context.Context, in CreateEntryInput) (*entity.StockEntry, error) {
	if in.InventoryID == "" || in.ProductID == "" || in.Quantity < 0 || in.MinStockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.authorize(ctx, in.Actor, in.InventoryID); err != nil {
		return nil, err
	}
	inv, err := uc.inventoryRepo.GetByID(ctx, in.InventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil || !inv.IsActive {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrNotFound
	}

	entry := &entity.StockEntry{
		ID:               uuid.New().String(),
		InventoryID:      in.InventoryID,
		ProductID:        in.ProductID,
		Quantity:         in.Quantity,
		MinStockQuantity: in.MinStockQuantity,
	}
	created, err := uc.entries.Insert(ctx, entry)
	if err != nil {
		return nil, err
	}
	return uc.afterCommit(ctx, in.Actor, entity.AuditActionInsert, nil, created,
		fmt.Sprintf("alta de stock: quantity=%d, min=%d", created.Quantity, created.MinStockQuantity))
}

// IncreaseQuantity suma delta (> 0) a la cantidad actual.
func (uc *UseCase) IncreaseQuantity(ctx context.Context, inventoryID, productID string, delta int64, actor *string) (*entity.StockEntry, error) {
	if delta <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, inventoryID, productID, actor, entity.AuditActionQuantityIncrease,
		func(current *entity.StockEntry) (int64, int64, string, error) {
			newQty := current.Quantity + delta
			return newQty, current.MinStockQuantity,
				fmt.Sprintf("quantity %d -> %d (delta +%d)", current.Quantity, newQty, delta), nil
		})
}

// DecreaseQuantity resta delta (> 0) de la cantidad actual; la cantidad
// resultante nunca puede ser negativa.
func (uc *UseCase) DecreaseQuantity(ctx context.Context, inventoryID, productID string, delta int64, actor *string) (*entity.StockEntry, error) {
	if delta <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, inventoryID, productID, actor, entity.AuditActionQuantityDecrease,
		func(current *entity.StockEntry) (int64, int64, string, error) {
			if current.Quantity-delta < 0 {
				return 0, 0, "", domain.ErrInsufficientStock
			}
			newQty := current.Quantity - delta
			return newQty, current.MinStockQuantity,
				fmt.Sprintf("quantity %d -> %d (delta -%d)", current.Quantity, newQty, delta), nil
		})
}

// SetQuantity sobrescribe la cantidad con un valor absoluto (>= 0).
func (uc *UseCase) SetQuantity(ctx context.Context, inventoryID, productID string, newQuantity int64, actor *string) (*entity.StockEntry, error) {
	if newQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, inventoryID, productID, actor, entity.AuditActionQuantitySet,
		func(current *entity.StockEntry) (int64, int64, string, error) {
			return newQuantity, current.MinStockQuantity,
				fmt.Sprintf("quantity %d -> %d (set)", current.Quantity, newQuantity), nil
		})
}

// UpdateMinStockThreshold sobrescribe el umbral mínimo (>= 0). La condición
// de stock bajo se reevalúa contra la cantidad actual y el umbral nuevo, por
// lo que subir el umbral puede disparar una alerta sin cambio de cantidad.
func (uc *UseCase) UpdateMinStockThreshold(ctx context.Context, inventoryID, productID string, newThreshold int64, actor *string) (*entity.StockEntry, error) {
	if newThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, inventoryID, productID, actor, entity.AuditActionMinStockUpdate,
		func(current *entity.StockEntry) (int64, int64, string, error) {
			return current.Quantity, newThreshold,
				fmt.Sprintf("min_stock_quantity %d -> %d", current.MinStockQuantity, newThreshold), nil
		})
}

// RemoveEntry elimina la entrada del par (hard delete). Audita DELETE con el
// snapshot previo y sin valores nuevos; no evalúa stock bajo porque la
// entrada ya no existe.
func (uc *UseCase) RemoveEntry(ctx context.Context, inventoryID, productID string, actor *string) (*entity.StockEntry, error) {
	if err := uc.authorize(ctx, actor, inventoryID); err != nil {
		return nil, err
	}
	entry, err := uc.entries.GetByPair(ctx, inventoryID, productID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return uc.remove(ctx, entry, actor)
}

// RemoveEntryByID elimina la entrada por su id surrogate. Carga la entrada
// para conocer el inventario antes de autorizar.
func (uc *UseCase) RemoveEntryByID(ctx context.Context, entryID string, actor *string) (*entity.StockEntry, error) {
	entry, err := uc.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorize(ctx, actor, entry.InventoryID); err != nil {
		return nil, err
	}
	return uc.remove(ctx, entry, actor)
}

func (uc *UseCase) remove(ctx context.Context, entry *entity.StockEntry, actor *string) (*entity.StockEntry, error) {
	deleted, err := uc.entries.Delete(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	// Tras el commit del borrado solo queda la auditoría; sin evaluación de
	// stock bajo.
	_, auditErr := uc.recorder.Append(context.WithoutCancel(ctx), entity.AuditDraft{
		UserID:    actor,
		TableName: stockEntriesTable,
		RecordID:  deleted.ID,
		Action:    entity.AuditActionDelete,
		OldValues: deleted.Snapshot(),
		Changes:   "baja de la entrada de stock",
	})
	if auditErr != nil {
		uc.log.Error().Err(auditErr).Str("entry_id", deleted.ID).Msg("auditoría de borrado no persistida")
		return deleted, domain.ErrAuditPending
	}
	return deleted, nil
}

// GetEntry consulta de lectura de la entrada del par; domain.ErrNotFound si
// no existe.
func (uc *UseCase) GetEntry(ctx context.Context, inventoryID, productID string) (*entity.StockEntry, error) {
	entry, err := uc.entries.GetByPair(ctx, inventoryID, productID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// ListByInventory lista las entradas de un inventario.
func (uc *UseCase) ListByInventory(ctx context.Context, inventoryID string) ([]*entity.StockEntry, error) {
	return uc.entries.ListByInventory(ctx, inventoryID)
}

// authorize resuelve la autorización antes de tocar el ledger; un caller no
// autorizado recibe siempre ErrForbidden, exista o no la entrada.
func (uc *UseCase) authorize(ctx context.Context, actor *string, inventoryID string) error {
	ok, err := uc.gate.IsAuthorized(ctx, actor, inventoryID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// mutate implementa la secuencia leer-validar-escribir con update condicional:
// si otra mutación del mismo par gana la carrera, relee y recalcula hasta
// maxConditionalRetries veces. compute devuelve cantidad y umbral nuevos más
// el resumen del cambio, o el error de invariante calculado sobre la lectura
// fresca.
func (uc *UseCase) mutate(
	ctx context.Context,
	inventoryID, productID string,
	actor *string,
	action string,
	compute func(current *entity.StockEntry) (newQty, newMin int64, changes string, err error),
) (*entity.StockEntry, error) {
	if err := uc.authorize(ctx, actor, inventoryID); err != nil {
		return nil, err
	}
	for attempt := 0; attempt < maxConditionalRetries; attempt++ {
		current, err := uc.entries.GetByPair(ctx, inventoryID, productID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		newQty, newMin, changes, err := compute(current)
		if err != nil {
			return nil, err
		}
		updated, err := uc.entries.UpdateConditional(ctx, current.ID, current.Quantity, newQty, newMin)
		if errors.Is(err, domain.ErrConcurrentUpdate) {
			uc.log.Debug().
				Str("inventory_id", inventoryID).
				Str("product_id", productID).
				Int("attempt", attempt+1).
				Msg("conflicto de concurrencia en el ledger, releyendo")
			continue
		}
		if err != nil {
			return nil, err
		}
		return uc.afterCommit(ctx, actor, action, current, updated, changes)
	}
	return nil, domain.ErrUnavailable
}

// afterCommit ejecuta las etapas post-commit: auditoría de la mutación y
// evaluación de stock bajo. Usa un contexto desacoplado de la cancelación del
// caller: una vez confirmado el ledger, la operación ocurrió y no se descarta
// en silencio. Si la auditoría falla, la mutación sigue siendo válida y se
// reporta ErrAuditPending como error secundario junto a la entrada.
func (uc *UseCase) afterCommit(ctx context.Context, actor *string, action string, old, updated *entity.StockEntry, changes string) (*entity.StockEntry, error) {
	bg := context.WithoutCancel(ctx)

	var oldValues map[string]any
	if old != nil {
		oldValues = old.Snapshot()
	}
	_, auditErr := uc.recorder.Append(bg, entity.AuditDraft{
		UserID:    actor,
		TableName: stockEntriesTable,
		RecordID:  updated.ID,
		Action:    action,
		OldValues: oldValues,
		NewValues: updated.Snapshot(),
		Changes:   changes,
	})

	uc.evaluateLowStock(bg, actor, updated)

	if auditErr != nil {
		uc.log.Error().Err(auditErr).
			Str("entry_id", updated.ID).
			Str("action", action).
			Msg("auditoría de mutación no persistida")
		return updated, domain.ErrAuditPending
	}
	return updated, nil
}

// evaluateLowStock subrutina compartida: si la entrada quedó en stock bajo,
// difunde la notificación y agrega el registro LOW_STOCK_ALERT. Los fallos de
// difusión no son errores; el fallo del registro de alerta solo se loggea.
func (uc *UseCase) evaluateLowStock(ctx context.Context, actor *string, entry *entity.StockEntry) {
	n := uc.notifier.Evaluate(ctx, entry)
	if n == nil {
		return
	}
	uc.notifier.Broadcast(n)
	if _, err := uc.recorder.Append(ctx, entity.AuditDraft{
		UserID:    actor,
		TableName: stockEntriesTable,
		RecordID:  entry.ID,
		Action:    entity.AuditActionLowStockAlert,
		NewValues: n.Snapshot(),
		Changes:   n.Message,
	}); err != nil {
		uc.log.Error().Err(err).Str("entry_id", entry.ID).Msg("registro de alerta de stock bajo no persistido")
	}
}
