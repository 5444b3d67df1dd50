package product

import (
	"context"
	"fmt"

	"plataforma-pedidos/internal/domain"
	apperrors "plataforma-pedidos/internal/errors"
)

type productService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %q not found", id))
	}
	return p, nil
}
