package repository

import (
	"context"

	"github.com/tu-usuario/stock-core/internal/domain/entity"
)

// StockEntryRepository es el puerto del ledger de stock.
//
// GetByPair y GetByID devuelven (nil, nil) cuando la entrada no existe.
// UpdateConditional aplica el cambio solo si la cantidad actual coincide con
// expectedQuantity; si ninguna fila coincide devuelve domain.ErrConcurrentUpdate
// para que el caller relea y reintente.
type StockEntryRepository interface {
	GetByPair(ctx context.Context, inventoryID, productID string) (*entity.StockEntry, error)
	GetByID(ctx context.Context, id string) (*entity.StockEntry, error)
	ListByInventory(ctx context.Context, inventoryID string) ([]*entity.StockEntry, error)
	// Insert persiste una entrada nueva; domain.ErrConflict si ya existe una
	// para el mismo par (inventario, producto).
	Insert(ctx context.Context, entry *entity.StockEntry) (*entity.StockEntry, error)
	UpdateConditional(ctx context.Context, id string, expectedQuantity, newQuantity, newMinStock int64) (*entity.StockEntry, error)
	// Delete elimina la entrada (hard delete) y devuelve el estado borrado;
	// domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) (*entity.StockEntry, error)
}
