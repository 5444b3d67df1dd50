package dto

// CreateOrderRequest is the orders.create input. Every field is a required
// JSON string, numeric values included; pointers let the controller tell a
// missing field from an empty one.
type CreateOrderRequest struct {
	ClientName  *string `json:"clientName"`
	ClientPhone *string `json:"clientPhone"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
	Products    *string `json:"products"`
	Total       *string `json:"total"`
}

// CreateOrderInput is a schema-valid orders.create payload.
type CreateOrderInput struct {
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	Products    string `json:"products"`
	Total       string `json:"total"`
}
