package order

import (
	"database/sql"

	"go.uber.org/zap"

	"plataforma-pedidos/internal/config"
	"plataforma-pedidos/internal/order/controller"
	"plataforma-pedidos/internal/order/events"
	orderrepo "plataforma-pedidos/internal/order/repository"
	"plataforma-pedidos/internal/order/service"
	"plataforma-pedidos/internal/order/usecase"
)

type Module struct {
	Orders     *controller.OrdersController
	Checkout   *controller.CheckoutController
	Submission *service.SubmissionService
}

// NewModule wires the order stack. A nil writer disables order events.
func NewModule(
	db *sql.DB,
	writer events.MessageWriter,
	carts service.CartSessions,
	sessions controller.SessionResolver,
	cfg config.OrderConfig,
	logger *zap.Logger,
) *Module {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)

	var publisher usecase.EventPublisher = events.NoopPublisher{}
	if writer != nil {
		publisher = events.NewKafkaPublisher(writer)
	}

	createUC := usecase.NewCreateOrderUseCase(orderRepo, publisher, logger)
	listUC := usecase.NewListOrdersUseCase(orderRepo, logger)
	submission := service.NewSubmissionService(carts, createUC, cfg, logger)

	return &Module{
		Orders:     controller.NewOrdersController(createUC, listUC, logger),
		Checkout:   controller.NewCheckoutController(submission, sessions, logger),
		Submission: submission,
	}
}
