package product

import (
	"context"

	"plataforma-pedidos/internal/domain"
)

type useCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &useCase{service: service}
}

func (uc *useCase) ListProducts(ctx context.Context, quantity int) (*ListProductsResponse, error) {
	found, err := uc.service.List(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]ProductDTO, 0, len(found))
	for _, p := range found {
		products = append(products, toDTO(p, quantity))
	}

	return &ListProductsResponse{
		Products:          products,
		DiscountThreshold: domain.DiscountThreshold,
		DiscountPercent:   domain.DiscountPercent,
	}, nil
}

func (uc *useCase) GetProduct(ctx context.Context, id string, quantity int) (*ProductDTO, error) {
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*p, quantity)
	return &dto, nil
}

func toDTO(p domain.Product, quantity int) ProductDTO {
	if quantity < 1 {
		quantity = 1
	}
	return ProductDTO{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price.InexactFloat64(),
		Weight:             p.Weight,
		Image:              p.Image,
		Quantity:           quantity,
		HasDiscount:        domain.HasDiscount(quantity),
		EffectiveUnitPrice: domain.EffectiveUnitPrice(p.Price, quantity).Round(2).InexactFloat64(),
		LineTotal:          domain.LineTotal(p.Price, quantity).Round(2).InexactFloat64(),
	}
}
