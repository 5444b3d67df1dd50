package cart

import (
	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/location"
)

type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type SaveClientRequest = location.FormInput

type LineDTO struct {
	ProductID          string  `json:"productId"`
	Name               string  `json:"name"`
	Weight             string  `json:"weight"`
	Quantity           int     `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	HasDiscount        bool    `json:"hasDiscount"`
	EffectiveUnitPrice float64 `json:"effectiveUnitPrice"`
	LineTotal          float64 `json:"lineTotal"`
}

type CartResponse struct {
	Lines  []LineDTO          `json:"lines"`
	Total  float64            `json:"total"`
	Count  int                `json:"count"`
	Client *domain.ClientData `json:"client"`
}

func toCartResponse(snap *Snapshot) CartResponse {
	c := snap.Cart()
	lines := make([]LineDTO, 0, len(snap.Lines))
	for _, l := range c.Lines() {
		lines = append(lines, LineDTO{
			ProductID:          l.ProductID,
			Name:               l.Name,
			Weight:             l.Weight,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice.InexactFloat64(),
			HasDiscount:        domain.HasDiscount(l.Quantity),
			EffectiveUnitPrice: l.EffectiveUnitPrice().Round(2).InexactFloat64(),
			LineTotal:          l.Total().Round(2).InexactFloat64(),
		})
	}

	return CartResponse{
		Lines:  lines,
		Total:  c.Total().Round(2).InexactFloat64(),
		Count:  c.Count(),
		Client: snap.Client,
	}
}
