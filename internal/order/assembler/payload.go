package assembler

import (
	"encoding/json"
	"fmt"

	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/dto"
	apperrors "plataforma-pedidos/internal/errors"
	"plataforma-pedidos/internal/location"
)

// BuildPayload turns a cart and its client data into an orders.create
// payload. Nothing is sent when the cart is empty or the client data is
// incomplete.
func BuildPayload(lines []domain.CartLine, client *domain.ClientData) (*dto.CreateOrderInput, error) {
	c := domain.NewCart(lines...)
	if c.IsEmpty() {
		return nil, apperrors.NewValidationError("cart is empty", apperrors.ValidationDetail{
			Field:   "cart",
			Message: "add at least one product before ordering",
		})
	}

	if client == nil {
		return nil, apperrors.NewValidationError("client data is required", apperrors.ValidationDetail{
			Field:   "client",
			Message: "save delivery details before ordering",
		})
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}

	products := make([]domain.OrderProduct, 0, len(lines))
	for _, l := range c.Lines() {
		products = append(products, domain.OrderProduct{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.EffectiveUnitPrice().Round(2).InexactFloat64(),
			Weight:   l.Weight,
		})
	}

	encoded, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("encoding order products: %w", err)
	}

	return &dto.CreateOrderInput{
		ClientName:  client.Name,
		ClientPhone: client.Phone,
		Latitude:    location.FormatCoordinate(*client.Latitude),
		Longitude:   location.FormatCoordinate(*client.Longitude),
		Products:    string(encoded),
		Total:       c.Total().StringFixed(2),
	}, nil
}
