package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"plataforma-pedidos/internal/auth"
	"plataforma-pedidos/internal/cart"
	"plataforma-pedidos/internal/config"
	"plataforma-pedidos/internal/infrastructure/kafka"
	"plataforma-pedidos/internal/infrastructure/logger"
	"plataforma-pedidos/internal/infrastructure/mysql"
	"plataforma-pedidos/internal/infrastructure/redis"
	"plataforma-pedidos/internal/order"
	"plataforma-pedidos/internal/order/events"
	"plataforma-pedidos/internal/product"
	"plataforma-pedidos/internal/server"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "internal/config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db := mustOpenDatabase(cfg, zapLogger)
	defer db.Close()

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("connecting to redis", zap.Error(err))
		}
		defer redisClient.Close()
		zapLogger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	} else {
		zapLogger.Info("redis not configured, carts kept in memory")
	}

	var writer events.MessageWriter
	if w := kafka.NewWriter(cfg.Kafka); w != nil {
		writer = w
		defer w.Close()
		zapLogger.Info("order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	products, err := product.NewModule(zapLogger)
	if err != nil {
		zapLogger.Fatal("loading products", zap.Error(err))
	}
	carts := cart.NewModule(redisClient, products.Service, cfg.Auth, zapLogger)
	orders := order.NewModule(db, writer, carts.Service, carts.Sessions, cfg.Order, zapLogger)

	router := server.NewRouter(server.Controllers{
		Products: products.Controller,
		Cart:     carts.Controller,
		Orders:   orders.Orders,
		Checkout: orders.Checkout,
		Auth:     auth.NewModule(cfg.Auth, zapLogger),
	}, cfg.Server.RequestTimeout, zapLogger)

	srv := server.New(cfg.Server.Port, router, cfg.Server.RequestTimeout, zapLogger)
	zapLogger.Info("order mode", zap.String("mode", orders.Submission.Mode()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func mustOpenDatabase(cfg *config.Config, zapLogger *zap.Logger) *sql.DB {
	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	zapLogger.Info("database connected")

	if cfg.Database.MigrateOnStart {
		if err := mysql.Migrate(db, zapLogger); err != nil {
			zapLogger.Fatal("running migrations", zap.Error(err))
		}
	}
	return db
}
