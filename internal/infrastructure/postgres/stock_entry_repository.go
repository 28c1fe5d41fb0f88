package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-core/internal/domain"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación del ledger de stock sobre PostgreSQL.
// La serialización por par (inventario, producto) se resuelve con un update
// condicional sobre la cantidad esperada, no con locks de fila.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

const stockEntryColumns = `id, inventory_id, product_id, quantity, min_stock_quantity, created_at, updated_at`

func scanStockEntry(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(&e.ID, &e.InventoryID, &e.ProductID, &e.Quantity, &e.MinStockQuantity, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByPair obtiene la entrada del par (inventario, producto); (nil, nil) si no existe.
func (r *StockEntryRepo) GetByPair(ctx context.Context, inventoryID, productID string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE inventory_id = $1 AND product_id = $2`
	entry, err := scanStockEntry(r.q.QueryRow(ctx, query, inventoryID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return entry, nil
}

// GetByID obtiene la entrada por id surrogate; (nil, nil) si no existe.
func (r *StockEntryRepo) GetByID(ctx context.Context, id string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE id = $1`
	entry, err := scanStockEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry by id: %w", err)
	}
	return entry, nil
}

// ListByInventory lista las entradas de un inventario.
func (r *StockEntryRepo) ListByInventory(ctx context.Context, inventoryID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM stock_entries WHERE inventory_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.StockEntry
	for rows.Next() {
		entry, err := scanStockEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Insert persiste una entrada nueva. El constraint único sobre
// (inventory_id, product_id) garantiza a lo sumo una entrada por par;
// su violación se traduce a domain.ErrConflict.
func (r *StockEntryRepo) Insert(ctx context.Context, entry *entity.StockEntry) (*entity.StockEntry, error) {
	query := `
		INSERT INTO stock_entries (id, inventory_id, product_id, quantity, min_stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING ` + stockEntryColumns
	created, err := scanStockEntry(r.q.QueryRow(ctx, query,
		entry.ID, entry.InventoryID, entry.ProductID, entry.Quantity, entry.MinStockQuantity))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert stock entry: %w", err)
	}
	return created, nil
}

// UpdateConditional aplica el cambio solo si la cantidad actual coincide con
// expectedQuantity ("update ... where quantity = expected"). Cero filas
// afectadas significa que otra mutación ganó la carrera: domain.ErrConcurrentUpdate.
func (r *StockEntryRepo) UpdateConditional(ctx context.Context, id string, expectedQuantity, newQuantity, newMinStock int64) (*entity.StockEntry, error) {
	query := `
		UPDATE stock_entries
		SET quantity = $3, min_stock_quantity = $4, updated_at = now()
		WHERE id = $1 AND quantity = $2
		RETURNING ` + stockEntryColumns
	updated, err := scanStockEntry(r.q.QueryRow(ctx, query, id, expectedQuantity, newQuantity, newMinStock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("conditional update stock entry: %w", err)
	}
	return updated, nil
}

// Delete elimina la entrada (hard delete) y devuelve el estado borrado.
func (r *StockEntryRepo) Delete(ctx context.Context, id string) (*entity.StockEntry, error) {
	query := `
		DELETE FROM stock_entries WHERE id = $1
		RETURNING ` + stockEntryColumns
	deleted, err := scanStockEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete stock entry: %w", err)
	}
	return deleted, nil
}
