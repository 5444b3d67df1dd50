package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/dto"
	apperrors "plataforma-pedidos/internal/errors"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (uint64, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order domain.Order) error
}

type CreateOrderUseCase struct {
	orderRepo OrderRepository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewCreateOrderUseCase(orderRepo OrderRepository, publisher EventPublisher, logger *zap.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrder stores the order with status pendiente. The event is best effort:
// a publish failure is logged and the stored order is still returned.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error) {
	uc.logger.Info("create order started", zap.String("clientPhone", input.ClientPhone), zap.String("total", input.Total))

	order := &domain.Order{
		ClientName:  input.ClientName,
		ClientPhone: input.ClientPhone,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Products:    input.Products,
		Total:       input.Total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   uc.now().UTC().Truncate(time.Second),
	}

	id, err := uc.orderRepo.Create(ctx, order)
	if err != nil {
		uc.logger.Error("failed to insert order", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create order", err)
	}
	order.ID = id

	if err := uc.publisher.PublishOrderCreated(ctx, *order); err != nil {
		uc.logger.Warn("order event not published", zap.Uint64("orderId", id), zap.Error(err))
	}

	uc.logger.Info("order created", zap.Uint64("orderId", id))
	return order, nil
}
