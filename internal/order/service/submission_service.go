package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"plataforma-pedidos/internal/cart"
	"plataforma-pedidos/internal/config"
	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/dto"
	apperrors "plataforma-pedidos/internal/errors"
	"plataforma-pedidos/internal/order/assembler"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

type CartSessions interface {
	Get(ctx context.Context, sessionID string) (*cart.Snapshot, error)
	ClearLines(ctx context.Context, sessionID string) error
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error)
}

// SubmissionService turns a session's cart into an order. In message mode it
// only renders the deep link; in persisted mode it drives
// idle -> validating -> submitting -> succeeded|failed -> idle, one submission
// per session at a time.
type SubmissionService struct {
	carts          CartSessions
	creator        OrderCreator
	logger         *zap.Logger
	mode           string
	whatsAppNumber string
	timeout        time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}

	// OnTransition, when set, observes every state change.
	OnTransition func(sessionID string, from, to State)
}

func NewSubmissionService(carts CartSessions, creator OrderCreator, cfg config.OrderConfig, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		carts:          carts,
		creator:        creator,
		logger:         logger,
		mode:           cfg.Mode,
		whatsAppNumber: cfg.WhatsAppNumber,
		timeout:        cfg.SubmitTimeout,
		inFlight:       make(map[string]struct{}),
	}
}

func (s *SubmissionService) Mode() string {
	return s.mode
}

func (s *SubmissionService) Submit(ctx context.Context, sessionID string) (*dto.CheckoutResult, error) {
	if s.mode == config.OrderModeMessage {
		snap, err := s.carts.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return s.buildMessage(snap)
	}

	// The cart is read only after the guard is held so a submit that finished
	// in between cannot leave stale lines to be ordered twice.
	if !s.begin(sessionID) {
		return nil, apperrors.NewConflictError("an order is already being submitted for this cart")
	}
	defer s.end(sessionID)

	snap, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.transition(sessionID, StateIdle, StateValidating)
	input, err := assembler.BuildPayload(snap.Lines, snap.Client)
	if err != nil {
		s.transition(sessionID, StateValidating, StateInvalid)
		s.transition(sessionID, StateInvalid, StateIdle)
		s.logger.Warn("order rejected before submit", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, err
	}

	s.transition(sessionID, StateValidating, StateSubmitting)
	submitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	order, err := s.creator.CreateOrder(submitCtx, *input)
	if err != nil {
		s.transition(sessionID, StateSubmitting, StateFailed)
		s.transition(sessionID, StateFailed, StateIdle)
		s.logger.Error("order submission failed", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create order", err)
	}

	s.transition(sessionID, StateSubmitting, StateSucceeded)
	if err := s.carts.ClearLines(ctx, sessionID); err != nil {
		// The order exists; a second submit would duplicate it.
		s.logger.Error("order created but cart not cleared", zap.String("sessionId", sessionID), zap.Uint64("orderId", order.ID), zap.Error(err))
	}
	s.transition(sessionID, StateSucceeded, StateIdle)

	result := dto.ToOrderDTO(*order)
	return &dto.CheckoutResult{
		Mode:  dto.CheckoutModePersisted,
		Order: &result,
	}, nil
}

func (s *SubmissionService) buildMessage(snap *cart.Snapshot) (*dto.CheckoutResult, error) {
	if len(snap.Lines) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", apperrors.ValidationDetail{
			Field:   "cart",
			Message: "add at least one product before ordering",
		})
	}

	text := assembler.BuildMessage(snap.Lines, snap.Client)
	return &dto.CheckoutResult{
		Mode:    dto.CheckoutModeMessage,
		Message: text,
		Link:    assembler.WhatsAppLink(s.whatsAppNumber, text),
	}, nil
}

func (s *SubmissionService) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *SubmissionService) end(sessionID string) {
	s.mu.Lock()
	delete(s.inFlight, sessionID)
	s.mu.Unlock()
}

func (s *SubmissionService) transition(sessionID string, from, to State) {
	s.logger.Debug("submission state", zap.String("sessionId", sessionID), zap.String("from", string(from)), zap.String("to", string(to)))
	if s.OnTransition != nil {
		s.OnTransition(sessionID, from, to)
	}
}
