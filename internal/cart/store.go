package cart

import (
	"context"
	"errors"
	"time"

	"plataforma-pedidos/internal/domain"
)

// Snapshot is what a session persists between requests.
type Snapshot struct {
	Lines     []domain.CartLine  `json:"lines"`
	Client    *domain.ClientData `json:"client,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (s *Snapshot) Cart() *domain.Cart {
	return domain.NewCart(s.Lines...)
}

type Store interface {
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Save(ctx context.Context, sessionID string, snap *Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrSessionNotFound = errors.New("cart session not found")
