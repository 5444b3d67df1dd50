package usecase

import (
	"context"

	"go.uber.org/zap"

	"plataforma-pedidos/internal/domain"
)

type ListOrdersUseCase struct {
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewListOrdersUseCase(orderRepo OrderRepository, logger *zap.Logger) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// ListOrders returns all orders newest first.
func (uc *ListOrdersUseCase) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := uc.orderRepo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to list orders", zap.Error(err))
		return nil, err
	}

	uc.logger.Debug("orders listed", zap.Int("count", len(orders)))
	return orders, nil
}
