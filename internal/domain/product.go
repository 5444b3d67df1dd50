package domain

import "github.com/shopspring/decimal"

// Product is an immutable catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Weight      string
	Image       string
}
