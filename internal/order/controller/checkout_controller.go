package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plataforma-pedidos/internal/dto"
	apperrors "plataforma-pedidos/internal/errors"
)

type SubmissionService interface {
	Submit(ctx context.Context, sessionID string) (*dto.CheckoutResult, error)
}

// SessionResolver identifies the caller's cart.
type SessionResolver interface {
	ID(w http.ResponseWriter, r *http.Request) string
}

type checkoutErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Error     string                       `json:"error"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

type CheckoutController struct {
	submission SubmissionService
	sessions   SessionResolver
	logger     *zap.Logger
}

func NewCheckoutController(submission SubmissionService, sessions SessionResolver, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		submission: submission,
		sessions:   sessions,
		logger:     logger,
	}
}

func (c *CheckoutController) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	sid := c.sessions.ID(w, r)

	result, err := c.submission.Submit(r.Context(), sid)
	if err != nil {
		c.handleSubmitError(w, traceID, err, logger)
		return
	}

	logger.Info("checkout completed", zap.String("mode", string(result.Mode)))
	writeJSON(w, http.StatusOK, result, c.logger)
}

func (c *CheckoutController) handleSubmitError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message, ve.Details)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, traceID, http.StatusConflict, "CONFLICT", ce.Message, nil)
		return
	}

	logger.Error("checkout failed", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", createOrderFailed, nil)
}

func (c *CheckoutController) writeError(w http.ResponseWriter, traceID string, status int, code, message string, details []apperrors.ValidationDetail) {
	writeJSON(w, status, checkoutErrorResponse{
		TraceID:   traceID,
		Error:     code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, c.logger)
}
