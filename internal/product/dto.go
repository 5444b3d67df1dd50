package product

type ListProductsResponse struct {
	Products          []ProductDTO `json:"products"`
	DiscountThreshold int          `json:"discountThreshold"`
	DiscountPercent   int          `json:"discountPercent"`
}

// ProductDTO prices the product for Quantity units, the way the list and
// detail views show it next to the quantity selector.
type ProductDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	Weight             string  `json:"weight"`
	Image              string  `json:"image"`
	Quantity           int     `json:"quantity"`
	HasDiscount        bool    `json:"hasDiscount"`
	EffectiveUnitPrice float64 `json:"effectiveUnitPrice"`
	LineTotal          float64 `json:"lineTotal"`
}
