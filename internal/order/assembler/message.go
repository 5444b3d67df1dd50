package assembler

import (
	"fmt"
	"net/url"
	"strings"

	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/location"
)

const (
	messageGreeting = "¡Hola! Me gustaría hacer un pedido:"
	whatsAppBaseURL = "https://wa.me/"
	mapsBaseURL     = "https://maps.google.com/?q="
)

// BuildMessage renders the human readable order. The client block is only
// written when client data is present.
func BuildMessage(lines []domain.CartLine, client *domain.ClientData) string {
	var b strings.Builder
	b.WriteString(messageGreeting)
	b.WriteString("\n\n")

	if client != nil {
		if client.Name != "" {
			fmt.Fprintf(&b, "*Cliente:* %s\n", client.Name)
		}
		if client.Phone != "" {
			fmt.Fprintf(&b, "*Teléfono:* %s\n", client.Phone)
		}
		if client.Address != "" {
			fmt.Fprintf(&b, "*Dirección:* %s\n", client.Address)
		}
		if client.HasLocation() {
			fmt.Fprintf(&b, "*Ubicación:* %s%s,%s\n", mapsBaseURL,
				location.FormatCoordinate(*client.Latitude), location.FormatCoordinate(*client.Longitude))
		}
		b.WriteString("\n")
	}

	c := domain.NewCart(lines...)
	items := make([]string, 0, len(lines))
	for _, l := range c.Lines() {
		items = append(items, fmt.Sprintf("• %s (%s) x%d = $%s", l.Name, l.Weight, l.Quantity, l.Total().StringFixed(2)))
	}
	b.WriteString(strings.Join(items, "\n"))

	fmt.Fprintf(&b, "\n\n*Total: $%s*", c.Total().StringFixed(2))
	return b.String()
}

// WhatsAppLink builds the wa.me deep link. Only the digits of number are kept.
func WhatsAppLink(number, text string) string {
	return whatsAppBaseURL + digitsOnly(number) + "?text=" + EncodeURIComponent(text)
}

// EncodeURIComponent percent-encodes s leaving only A-Z a-z 0-9 - _ . ! ~ * ' ( )
// unescaped, matching the browser function of the same name.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	).Replace(escaped)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
