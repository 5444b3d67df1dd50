package cart

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"plataforma-pedidos/internal/domain"
)

type ProductLookup interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

const lockStripes = 64

// Service owns the cart of every session. Mutations of one session are
// serialized; different sessions proceed independently.
type Service struct {
	store    Store
	products ProductLookup
	logger   *zap.Logger
	now      func() time.Time
	locks    [lockStripes]sync.Mutex
}

func NewService(store Store, products ProductLookup, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	snap, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return &Snapshot{}, nil
	}
	return snap, err
}

// AddItem clamps quantities below one to one, as the quantity selector does.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*Snapshot, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}

	return s.mutate(ctx, sessionID, func(snap *Snapshot) error {
		c := snap.Cart()
		if err := c.Add(*p, quantity); err != nil {
			return err
		}
		snap.Lines = c.Lines()
		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Snapshot, error) {
	return s.mutate(ctx, sessionID, func(snap *Snapshot) error {
		c := snap.Cart()
		c.Remove(productID)
		snap.Lines = c.Lines()
		return nil
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*Snapshot, error) {
	return s.mutate(ctx, sessionID, func(snap *Snapshot) error {
		c := snap.Cart()
		if err := c.SetQuantity(productID, quantity); err != nil {
			return err
		}
		snap.Lines = c.Lines()
		return nil
	})
}

func (s *Service) SaveClient(ctx context.Context, sessionID string, client domain.ClientData) (*Snapshot, error) {
	return s.mutate(ctx, sessionID, func(snap *Snapshot) error {
		snap.Client = &client
		return nil
	})
}

// ClearLines empties the cart but keeps the delivery details for the next
// order.
func (s *Service) ClearLines(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, func(snap *Snapshot) error {
		snap.Lines = nil
		return nil
	})
	return err
}

func (s *Service) Reset(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Snapshot) error) (*Snapshot, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	snap, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(snap); err != nil {
		return nil, err
	}
	snap.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, sessionID, snap); err != nil {
		s.logger.Error("saving cart failed", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}
	return snap, nil
}

func (s *Service) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	m := &s.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
