package location

import "fmt"

type GeolocationCode int

// Codes match the browser Geolocation API.
const (
	PermissionDenied    GeolocationCode = 1
	PositionUnavailable GeolocationCode = 2
	Timeout             GeolocationCode = 3
)

// GeolocationError is reported by the device position query. It is always
// recoverable by placing the pin by hand.
type GeolocationError struct {
	Code GeolocationCode
}

func (e *GeolocationError) Error() string {
	switch e.Code {
	case PermissionDenied:
		return "location permission denied, place the pin on the map"
	case PositionUnavailable:
		return "position unavailable, place the pin on the map"
	case Timeout:
		return "location request timed out, place the pin on the map"
	default:
		return fmt.Sprintf("unknown geolocation error %d", e.Code)
	}
}

func (e *GeolocationError) Field() string {
	return "location"
}

// FromCode maps a browser error code; zero means no error.
func FromCode(code int) error {
	if code == 0 {
		return nil
	}
	return &GeolocationError{Code: GeolocationCode(code)}
}
