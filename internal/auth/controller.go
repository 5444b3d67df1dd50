package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "plataforma-pedidos/internal/errors"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Controller struct {
	service    *Service
	cookieName string
	ttl        time.Duration
	logger     *zap.Logger
}

func NewController(service *Service, cookieName string, ttl time.Duration, logger *zap.Logger) *Controller {
	return &Controller{
		service:    service,
		cookieName: cookieName,
		ttl:        ttl,
		logger:     logger,
	}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": "invalid JSON body",
			"details": []apperrors.ValidationDetail{{Field: "body", Message: "request body must be valid JSON"}},
		})
		return
	}

	token, user, err := c.service.Login(req.Username, req.Password)
	if err != nil {
		if ue, ok := apperrors.IsUnauthorizedError(err); ok {
			c.logger.Warn("admin login rejected", zap.String("username", req.Username))
			c.writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":   "UNAUTHORIZED",
				"message": ue.Message,
			})
			return
		}
		c.logger.Error("admin login failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	http.SetCookie(w, c.cookie(r, token, int(c.ttl.Seconds())))
	c.logger.Info("admin logged in", zap.String("username", user.Username))
	c.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

// HandleMe writes the current user, or null without a valid session.
func (c *Controller) HandleMe(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(c.cookieName)
	if err != nil {
		c.writeJSON(w, http.StatusOK, nil)
		return
	}

	user, err := c.service.Verify(cookie.Value)
	if err != nil {
		c.logger.Debug("session rejected", zap.Error(err))
		c.writeJSON(w, http.StatusOK, nil)
		return
	}
	c.writeJSON(w, http.StatusOK, user)
}

func (c *Controller) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, c.cookie(r, "", -1))
	c.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
