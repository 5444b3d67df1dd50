package dto

type CheckoutMode string

const (
	CheckoutModeMessage   CheckoutMode = "message"
	CheckoutModePersisted CheckoutMode = "persisted"
)

// CheckoutResult carries the deep link in message mode or the stored order in
// persisted mode.
type CheckoutResult struct {
	Mode    CheckoutMode `json:"mode"`
	Message string       `json:"message,omitempty"`
	Link    string       `json:"link,omitempty"`
	Order   *OrderDTO    `json:"order,omitempty"`
}
