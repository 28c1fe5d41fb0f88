package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lectura de productos sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, sku, description, price, category_id, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	// category_id es nullable: productos sin categoría son válidos.
	var categoryID *string
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Description, &p.Price, &categoryID,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}

// GetByID obtiene el producto; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE id = $1`
	product, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Search busca por nombre o SKU. El término se normaliza (minúsculas, sin
// acentos) y se compara contra la columna name_normalized, o contra el SKU
// en bruto. Este servicio no escribe productos: name_normalized la puebla el
// proceso que carga el catálogo (seed/ETL), con el mismo plegado que
// normalizeSearch.
func (r *ProductRepo) Search(ctx context.Context, query string, limit, offset int) ([]*entity.Product, error) {
	term := "%" + normalizeSearch(query) + "%"
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name_normalized LIKE $1 OR lower(sku) LIKE $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, sql, term, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
