package domain

import (
	"strings"

	apperrors "plataforma-pedidos/internal/errors"
)

// ClientData is the delivery contact captured by the delivery form.
type ClientData struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

func (c ClientData) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Validate requires name, phone and both coordinates, which is what an order
// needs before it can be persisted.
func (c ClientData) Validate() error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(c.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(c.Phone) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "phone", Message: "phone is required"})
	}
	if c.Latitude == nil {
		details = append(details, apperrors.ValidationDetail{Field: "latitude", Message: "latitude is required"})
	} else if *c.Latitude < -90 || *c.Latitude > 90 {
		details = append(details, apperrors.ValidationDetail{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if c.Longitude == nil {
		details = append(details, apperrors.ValidationDetail{Field: "longitude", Message: "longitude is required"})
	} else if *c.Longitude < -180 || *c.Longitude > 180 {
		details = append(details, apperrors.ValidationDetail{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("incomplete client data", details...)
	}
	return nil
}
