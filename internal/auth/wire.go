package auth

import (
	"go.uber.org/zap"

	"plataforma-pedidos/internal/config"
)

func NewModule(cfg config.AuthConfig, logger *zap.Logger) *Controller {
	if cfg.AdminPasswordHash == "" {
		logger.Warn("admin login disabled: auth.adminPasswordHash is empty")
	}
	return NewController(NewService(cfg), cfg.CookieName, cfg.SessionTTL, logger)
}
