package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "plataforma-pedidos/internal/errors"
	"plataforma-pedidos/internal/location"
)

type Controller struct {
	service  *Service
	sessions Sessions
	form     location.Form
	logger   *zap.Logger
}

func NewController(service *Service, sessions Sessions, logger *zap.Logger) *Controller {
	return &Controller{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

func (c *Controller) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	sid := c.sessions.ID(w, r)

	snap, err := c.service.Get(r.Context(), sid)
	if err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toCartResponse(snap))
}

func (c *Controller) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	sid := c.sessions.ID(w, r)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}
	if req.ProductID == "" {
		c.writeValidationError(w, "productId is required", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId is required",
		})
		return
	}

	snap, err := c.service.AddItem(r.Context(), sid, req.ProductID, req.Quantity)
	if err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toCartResponse(snap))
}

func (c *Controller) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sid := c.sessions.ID(w, r)
	productID := chi.URLParam(r, "productId")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		c.writeValidationError(w, "quantity is required", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be an integer",
		})
		return
	}

	snap, err := c.service.UpdateQuantity(r.Context(), sid, productID, *req.Quantity)
	if err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toCartResponse(snap))
}

func (c *Controller) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	sid := c.sessions.ID(w, r)

	snap, err := c.service.RemoveItem(r.Context(), sid, chi.URLParam(r, "productId"))
	if err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toCartResponse(snap))
}

func (c *Controller) HandleSaveClient(w http.ResponseWriter, r *http.Request) {
	sid := c.sessions.ID(w, r)

	var req SaveClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	client, err := c.form.Save(req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	snap, err := c.service.SaveClient(r.Context(), sid, client)
	if err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toCartResponse(snap))
}

// HandleLocation returns where the delivery map opens: the saved coordinates
// or the default center. ?at=lat,lng previews a click on the map.
func (c *Controller) HandleLocation(w http.ResponseWriter, r *http.Request) {
	sid := c.sessions.ID(w, r)

	snap, err := c.service.Get(r.Context(), sid)
	if err != nil {
		c.handleError(w, err)
		return
	}

	var initial *location.Point
	if snap.Client != nil && snap.Client.HasLocation() {
		initial = &location.Point{Lat: *snap.Client.Latitude, Lng: *snap.Client.Longitude}
	}
	pin := location.NewPin(initial)

	if at := r.URL.Query().Get("at"); at != "" {
		p, err := location.ParsePoint(at)
		if err != nil {
			c.writeValidationError(w, "invalid point", apperrors.ValidationDetail{
				Field:   "at",
				Message: err.Error(),
			})
			return
		}
		pin.OnClick(p)
	}

	c.writeJSON(w, http.StatusOK, pin.View())
}

func (c *Controller) HandleReset(w http.ResponseWriter, r *http.Request) {
	sid := c.sessions.ID(w, r)

	if err := c.service.Reset(r.Context(), sid); err != nil {
		c.handleError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, toCartResponse(&Snapshot{}))
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nfe.Message,
		})
		return
	}

	c.logger.Error("cart operation failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
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

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
