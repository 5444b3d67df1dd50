package cart

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Sessions issues and reads the anonymous cart cookie.
type Sessions struct {
	CookieName string
	TTL        time.Duration
}

// ID returns the caller's cart session, issuing a fresh one when the cookie is
// missing or malformed.
func (s Sessions) ID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.TTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
