package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plataforma-pedidos/internal/cart"
	"plataforma-pedidos/internal/config"
	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/dto"
	apperrors "plataforma-pedidos/internal/errors"
)

// Mock implementations
type mockCartSessions struct {
	GetFunc        func(ctx context.Context, sessionID string) (*cart.Snapshot, error)
	ClearLinesFunc func(ctx context.Context, sessionID string) error
	cleared        int
}

func (m *mockCartSessions) Get(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	return m.GetFunc(ctx, sessionID)
}

func (m *mockCartSessions) ClearLines(ctx context.Context, sessionID string) error {
	m.cleared++
	if m.ClearLinesFunc != nil {
		return m.ClearLinesFunc(ctx, sessionID)
	}
	return nil
}

type mockOrderCreator struct {
	CreateOrderFunc func(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error)
	calls           int
}

func (m *mockOrderCreator) CreateOrder(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error) {
	m.calls++
	return m.CreateOrderFunc(ctx, input)
}

func ptr(f float64) *float64 { return &f }

func fullSnapshot() *cart.Snapshot {
	return &cart.Snapshot{
		Lines: []domain.CartLine{
			{ProductID: "girasol-500", Name: "Girasol", UnitPrice: decimal.NewFromInt(24), Weight: "500gr", Quantity: 2},
		},
		Client: &domain.ClientData{Name: "Ana", Phone: "6121234567", Latitude: ptr(25.2866), Longitude: ptr(-110.9769)},
	}
}

func snapshotSessions(snap *cart.Snapshot) *mockCartSessions {
	return &mockCartSessions{
		GetFunc: func(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
			return snap, nil
		},
	}
}

func persistedConfig() config.OrderConfig {
	return config.OrderConfig{Mode: config.OrderModePersisted, SubmitTimeout: time.Second}
}

func TestSubmit_PersistedSuccess(t *testing.T) {
	carts := snapshotSessions(fullSnapshot())
	creator := &mockOrderCreator{
		CreateOrderFunc: func(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			assert.Equal(t, "48.00", input.Total)
			return &domain.Order{ID: 11, Total: input.Total, Status: domain.OrderStatusPending}, nil
		},
	}

	svc := NewSubmissionService(carts, creator, persistedConfig(), zap.NewNop())
	var states []State
	svc.OnTransition = func(sessionID string, from, to State) { states = append(states, to) }

	result, err := svc.Submit(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, dto.CheckoutModePersisted, result.Mode)
	require.NotNil(t, result.Order)
	assert.Equal(t, uint64(11), result.Order.ID)
	assert.Equal(t, 1, carts.cleared)
	assert.Equal(t, []State{StateValidating, StateSubmitting, StateSucceeded, StateIdle}, states)
}

func TestSubmit_EmptyCartNeverCallsBackend(t *testing.T) {
	carts := snapshotSessions(&cart.Snapshot{})
	creator := &mockOrderCreator{}

	svc := NewSubmissionService(carts, creator, persistedConfig(), zap.NewNop())
	var states []State
	svc.OnTransition = func(sessionID string, from, to State) { states = append(states, to) }

	_, err := svc.Submit(context.Background(), "s1")
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, 0, creator.calls)
	assert.Equal(t, []State{StateValidating, StateInvalid, StateIdle}, states)
}

func TestSubmit_MissingCoordinatesNeverCallsBackend(t *testing.T) {
	snap := fullSnapshot()
	snap.Client.Longitude = nil
	creator := &mockOrderCreator{}

	svc := NewSubmissionService(snapshotSessions(snap), creator, persistedConfig(), zap.NewNop())

	_, err := svc.Submit(context.Background(), "s1")
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Details)
	assert.Equal(t, 0, creator.calls)
}

func TestSubmit_BackendFailureRetainsCart(t *testing.T) {
	carts := snapshotSessions(fullSnapshot())
	creator := &mockOrderCreator{
		CreateOrderFunc: func(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error) {
			return nil, errors.New("insert failed")
		},
	}

	svc := NewSubmissionService(carts, creator, persistedConfig(), zap.NewNop())
	var states []State
	svc.OnTransition = func(sessionID string, from, to State) { states = append(states, to) }

	result, err := svc.Submit(context.Background(), "s1")
	assert.Nil(t, result)
	var ie *apperrors.InternalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 0, carts.cleared)
	assert.Equal(t, []State{StateValidating, StateSubmitting, StateFailed, StateIdle}, states)
}

func TestSubmit_ClearFailureStillSucceeds(t *testing.T) {
	carts := snapshotSessions(fullSnapshot())
	carts.ClearLinesFunc = func(ctx context.Context, sessionID string) error {
		return errors.New("redis down")
	}
	creator := &mockOrderCreator{
		CreateOrderFunc: func(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error) {
			return &domain.Order{ID: 1}, nil
		},
	}

	svc := NewSubmissionService(carts, creator, persistedConfig(), zap.NewNop())

	result, err := svc.Submit(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Order.ID)
}

func TestSubmit_ConcurrentSubmitIsRejected(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	creator := &mockOrderCreator{
		CreateOrderFunc: func(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error) {
			once.Do(func() { close(entered) })
			<-release
			return &domain.Order{ID: 5}, nil
		},
	}

	svc := NewSubmissionService(snapshotSessions(fullSnapshot()), creator, persistedConfig(), zap.NewNop())

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = svc.Submit(context.Background(), "s1")
	}()

	<-entered
	_, err := svc.Submit(context.Background(), "s1")
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)

	// Other sessions are independent.
	other := NewSubmissionService(snapshotSessions(&cart.Snapshot{}), creator, persistedConfig(), zap.NewNop())
	_, err = other.Submit(context.Background(), "s2")
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)

	close(release)
	wg.Wait()
	assert.NoError(t, firstErr)

	// Back to idle: the session can submit again.
	_, err = svc.Submit(context.Background(), "s1")
	assert.NoError(t, err)
}

func TestSubmit_MessageMode(t *testing.T) {
	carts := snapshotSessions(fullSnapshot())
	creator := &mockOrderCreator{}
	cfg := config.OrderConfig{Mode: config.OrderModeMessage, WhatsAppNumber: "+52 (564) 870-8096", SubmitTimeout: time.Second}

	svc := NewSubmissionService(carts, creator, cfg, zap.NewNop())

	result, err := svc.Submit(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, dto.CheckoutModeMessage, result.Mode)
	assert.True(t, strings.HasPrefix(result.Link, "https://wa.me/525648708096?text="))
	assert.Contains(t, result.Message, "• Girasol (500gr) x2 = $48.00")
	assert.Contains(t, result.Message, "*Total: $48.00*")
	assert.Equal(t, 0, creator.calls)
	assert.Equal(t, 0, carts.cleared)
}

func TestSubmit_MessageModeEmptyCart(t *testing.T) {
	cfg := config.OrderConfig{Mode: config.OrderModeMessage, WhatsAppNumber: "5648708096", SubmitTimeout: time.Second}
	svc := NewSubmissionService(snapshotSessions(&cart.Snapshot{}), &mockOrderCreator{}, cfg, zap.NewNop())

	_, err := svc.Submit(context.Background(), "s1")
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestSubmit_CartLoadError(t *testing.T) {
	carts := &mockCartSessions{
		GetFunc: func(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
			return nil, errors.New("store unavailable")
		},
	}

	svc := NewSubmissionService(carts, &mockOrderCreator{}, persistedConfig(), zap.NewNop())

	_, err := svc.Submit(context.Background(), "s1")
	assert.Error(t, err)
}

// statefulCarts clears its lines like the real cart service. The first Get
// blocks until released.
type statefulCarts struct {
	mu      sync.Mutex
	snap    *cart.Snapshot
	gets    int
	inGet   chan struct{}
	release chan struct{}
}

func (s *statefulCarts) Get(ctx context.Context, sessionID string) (*cart.Snapshot, error) {
	s.mu.Lock()
	s.gets++
	first := s.gets == 1
	s.mu.Unlock()

	if first {
		close(s.inGet)
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &cart.Snapshot{Lines: append([]domain.CartLine(nil), s.snap.Lines...), Client: s.snap.Client}, nil
}

func (s *statefulCarts) ClearLines(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Lines = nil
	return nil
}

func TestSubmit_SlowCartReadCannotDuplicateOrder(t *testing.T) {
	carts := &statefulCarts{
		snap:    fullSnapshot(),
		inGet:   make(chan struct{}),
		release: make(chan struct{}),
	}

	var mu sync.Mutex
	created := 0
	creator := &mockOrderCreator{
		CreateOrderFunc: func(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error) {
			mu.Lock()
			defer mu.Unlock()
			created++
			return &domain.Order{ID: uint64(created)}, nil
		},
	}

	svc := NewSubmissionService(carts, creator, persistedConfig(), zap.NewNop())

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = svc.Submit(context.Background(), "s1")
	}()

	<-carts.inGet
	_, err := svc.Submit(context.Background(), "s1")
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)

	close(carts.release)
	wg.Wait()
	require.NoError(t, slowErr)

	assert.Equal(t, 1, created)
	snap, err := carts.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)

	// The cart is empty now, so a further submit is rejected before the backend.
	_, err = svc.Submit(context.Background(), "s1")
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, 1, created)
}
