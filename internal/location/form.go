package location

import (
	"strings"

	"plataforma-pedidos/internal/domain"
	apperrors "plataforma-pedidos/internal/errors"
)

type FormInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// Either a pin position or a device position; the device wins when both
	// are set and it did not fail.
	Pin              *Point `json:"pin,omitempty"`
	Device           *Point `json:"device,omitempty"`
	GeolocationError int    `json:"geolocationError,omitempty"`
}

// Form turns delivery form input into ClientData.
type Form struct{}

// Save requires name and phone. Coordinates are taken from the device query
// or the pin; a geolocation failure with no pin is reported so the user can
// fall back to the map.
func (Form) Save(in FormInput) (domain.ClientData, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(in.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(in.Phone) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "phone", Message: "phone is required"})
	}

	data := domain.ClientData{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}

	geoErr := FromCode(in.GeolocationError)
	var chosen *Point
	switch {
	case in.Device != nil && geoErr == nil:
		chosen = in.Device
	case in.Pin != nil:
		chosen = in.Pin
	}

	if chosen != nil {
		if !chosen.Valid() {
			details = append(details, apperrors.ValidationDetail{Field: "location", Message: "coordinates out of range"})
		} else {
			lat, lng := chosen.Lat, chosen.Lng
			data.Latitude = &lat
			data.Longitude = &lng
		}
	} else if geoErr != nil {
		details = append(details, apperrors.ValidationDetail{Field: "location", Message: geoErr.Error()})
	}

	if len(details) > 0 {
		return domain.ClientData{}, apperrors.NewValidationError("invalid delivery details", details...)
	}
	return data, nil
}
