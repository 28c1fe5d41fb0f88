package usecase

import (
	"context"

	"github.com/tu-usuario/stock-core/internal/application/dto"
	"github.com/tu-usuario/stock-core/internal/domain"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
)

// ProductUseCase lecturas de productos (colaborador CRUD del motor de stock).
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// GetByID devuelve el producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// Search busca productos por nombre o SKU con paginación.
func (uc *ProductUseCase) Search(ctx context.Context, query string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.Search(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}
