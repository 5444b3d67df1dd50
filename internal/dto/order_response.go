package dto

import (
	"time"

	"plataforma-pedidos/internal/domain"
)

type OrderDTO struct {
	ID          uint64    `json:"id"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	Latitude    string    `json:"latitude"`
	Longitude   string    `json:"longitude"`
	Products    string    `json:"products"`
	Total       string    `json:"total"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToOrderDTO(o domain.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID,
		ClientName:  o.ClientName,
		ClientPhone: o.ClientPhone,
		Latitude:    o.Latitude,
		Longitude:   o.Longitude,
		Products:    o.Products,
		Total:       o.Total,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
	}
}

// CreateOrderResponse is {success:true, result} or {success:false, error}.
type CreateOrderResponse struct {
	Success bool      `json:"success"`
	Result  *OrderDTO `json:"result,omitempty"`
	Error   string    `json:"error,omitempty"`
}
