package cart

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"plataforma-pedidos/internal/config"
)

type Module struct {
	Controller *Controller
	Service    *Service
	Sessions   Sessions
}

// NewModule stores carts in Redis when a client is given, in memory otherwise.
func NewModule(redisClient *redis.Client, products ProductLookup, cfg config.AuthConfig, logger *zap.Logger) *Module {
	var store Store
	if redisClient != nil {
		store = NewRedisStore(redisClient, cfg.CartTTL)
	} else {
		store = NewMemoryStore(cfg.CartTTL)
	}

	sessions := Sessions{CookieName: cfg.CartCookieName, TTL: cfg.CartTTL}
	svc := NewService(store, products, logger)

	return &Module{
		Controller: NewController(svc, sessions, logger),
		Service:    svc,
		Sessions:   sessions,
	}
}
