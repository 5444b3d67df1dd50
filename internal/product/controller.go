package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "plataforma-pedidos/internal/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	quantity, ok := c.parseQuantity(w, r)
	if !ok {
		return
	}

	resp, err := c.useCase.ListProducts(r.Context(), quantity)
	if err != nil {
		c.logger.Error("list products failed", zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	quantity, ok := c.parseQuantity(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "productId")
	resp, err := c.useCase.GetProduct(r.Context(), id, quantity)
	if err != nil {
		if nfe, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": nfe.Message,
			})
			return
		}
		c.logger.Error("get product failed", zap.String("productId", id), zap.Error(err))
		c.writeInternalError(w)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

// parseQuantity reads the optional ?quantity= used to price the view.
func (c *Controller) parseQuantity(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("quantity")
	if raw == "" {
		return 1, true
	}

	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity < 1 {
		c.writeValidationError(w, "invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		})
		return 0, false
	}
	return quantity, true
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeInternalError(w http.ResponseWriter) {
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
