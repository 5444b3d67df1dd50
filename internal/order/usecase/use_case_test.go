package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/dto"
	apperrors "plataforma-pedidos/internal/errors"
)

// Mock implementations
type mockOrderRepository struct {
	CreateFunc  func(ctx context.Context, order *domain.Order) (uint64, error)
	FindAllFunc func(ctx context.Context) ([]domain.Order, error)
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) (uint64, error) {
	return m.CreateFunc(ctx, order)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return m.FindAllFunc(ctx)
}

type mockEventPublisher struct {
	PublishOrderCreatedFunc func(ctx context.Context, order domain.Order) error
	published               []domain.Order
}

func (m *mockEventPublisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	m.published = append(m.published, order)
	if m.PublishOrderCreatedFunc != nil {
		return m.PublishOrderCreatedFunc(ctx, order)
	}
	return nil
}

func sampleInput() dto.CreateOrderInput {
	return dto.CreateOrderInput{
		ClientName:  "Ana López",
		ClientPhone: "6121234567",
		Latitude:    "25.2866",
		Longitude:   "-110.9769",
		Products:    `[{"name":"Girasol","quantity":2,"price":24,"weight":"500gr"}]`,
		Total:       "48.00",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	var stored *domain.Order
	repo := &mockOrderRepository{
		CreateFunc: func(ctx context.Context, order *domain.Order) (uint64, error) {
			stored = order
			return 7, nil
		},
	}
	publisher := &mockEventPublisher{}

	uc := NewCreateOrderUseCase(repo, publisher, zap.NewNop())
	fixed := time.Date(2026, 5, 2, 13, 4, 5, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	order, err := uc.CreateOrder(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, uint64(7), order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "48.00", order.Total)
	assert.Equal(t, fixed, order.CreatedAt)
	require.NotNil(t, stored)
	assert.Equal(t, "Ana López", stored.ClientName)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, uint64(7), publisher.published[0].ID)
}

func TestCreateOrder_RepositoryError(t *testing.T) {
	repo := &mockOrderRepository{
		CreateFunc: func(ctx context.Context, order *domain.Order) (uint64, error) {
			return 0, errors.New("connection refused")
		},
	}
	publisher := &mockEventPublisher{}

	uc := NewCreateOrderUseCase(repo, publisher, zap.NewNop())

	order, err := uc.CreateOrder(context.Background(), sampleInput())
	assert.Nil(t, order)
	require.Error(t, err)

	ie, ok := err.(*apperrors.InternalError)
	require.True(t, ok)
	assert.Equal(t, "failed to create order", ie.Message)
	assert.Empty(t, publisher.published)
}

func TestCreateOrder_PublishFailureDoesNotFail(t *testing.T) {
	repo := &mockOrderRepository{
		CreateFunc: func(ctx context.Context, order *domain.Order) (uint64, error) {
			return 3, nil
		},
	}
	publisher := &mockEventPublisher{
		PublishOrderCreatedFunc: func(ctx context.Context, order domain.Order) error {
			return errors.New("broker unavailable")
		},
	}

	uc := NewCreateOrderUseCase(repo, publisher, zap.NewNop())

	order, err := uc.CreateOrder(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), order.ID)
}

func TestListOrders(t *testing.T) {
	repo := &mockOrderRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Order, error) {
			return []domain.Order{{ID: 2}, {ID: 1}}, nil
		},
	}

	uc := NewListOrdersUseCase(repo, zap.NewNop())

	orders, err := uc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, uint64(2), orders[0].ID)
}

func TestListOrders_Error(t *testing.T) {
	repo := &mockOrderRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Order, error) {
			return nil, errors.New("db down")
		},
	}

	uc := NewListOrdersUseCase(repo, zap.NewNop())

	orders, err := uc.ListOrders(context.Background())
	assert.Error(t, err)
	assert.Nil(t, orders)
}
