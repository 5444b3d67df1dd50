package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plataforma-pedidos/internal/domain"
	"plataforma-pedidos/internal/dto"
	apperrors "plataforma-pedidos/internal/errors"
)

const createOrderFailed = "Failed to create order"

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, input dto.CreateOrderInput) (*domain.Order, error)
}

type ListOrdersUseCase interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// OrdersController serves the orders.create and orders.getAll procedures.
type OrdersController struct {
	createUseCase CreateOrderUseCase
	listUseCase   ListOrdersUseCase
	logger        *zap.Logger
}

func NewOrdersController(createUseCase CreateOrderUseCase, listUseCase ListOrdersUseCase, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		logger:        logger,
	}
}

func (c *OrdersController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be a JSON object with string fields",
		})
		return
	}

	input, err := validateCreateOrderRequest(req)
	if err != nil {
		ve, _ := apperrors.IsValidationError(err)
		logger.Warn("orders.create rejected", zap.Any("details", ve.Details))
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	order, err := c.createUseCase.CreateOrder(r.Context(), *input)
	if err != nil {
		logger.Error("orders.create failed", zap.Error(err))
		c.writeJSON(w, http.StatusOK, dto.CreateOrderResponse{Success: false, Error: createOrderFailed})
		return
	}

	result := dto.ToOrderDTO(*order)
	c.writeJSON(w, http.StatusOK, dto.CreateOrderResponse{Success: true, Result: &result})
}

// HandleGetAll never fails: a storage error yields an empty list.
func (c *OrdersController) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.listUseCase.ListOrders(r.Context())
	if err != nil {
		logger.Error("orders.getAll failed", zap.Error(err))
		orders = nil
	}

	out := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToOrderDTO(o))
	}
	c.writeJSON(w, http.StatusOK, out)
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) (*dto.CreateOrderInput, error) {
	var details []apperrors.ValidationDetail

	required := []struct {
		field string
		value *string
	}{
		{"clientName", req.ClientName},
		{"clientPhone", req.ClientPhone},
		{"latitude", req.Latitude},
		{"longitude", req.Longitude},
		{"products", req.Products},
		{"total", req.Total},
	}
	for _, f := range required {
		if f.value == nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if req.Products != nil {
		// null decodes into a nil slice without error, so it is rejected explicitly.
		var products []domain.OrderProduct
		if err := json.Unmarshal([]byte(*req.Products), &products); err != nil || products == nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   "products",
				Message: "products must be a JSON array",
			})
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return &dto.CreateOrderInput{
		ClientName:  *req.ClientName,
		ClientPhone: *req.ClientPhone,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Products:    *req.Products,
		Total:       *req.Total,
	}, nil
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrdersController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	}, c.logger)
}

func (c *OrdersController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data, c.logger)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
