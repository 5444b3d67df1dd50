package product

import (
	"context"

	"plataforma-pedidos/internal/domain"
)

type UseCase interface {
	ListProducts(ctx context.Context, quantity int) (*ListProductsResponse, error)
	GetProduct(ctx context.Context, id string, quantity int) (*ProductDTO, error)
}

type Service interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, bool, error)
}
