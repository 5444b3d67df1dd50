package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"plataforma-pedidos/internal/auth"
	"plataforma-pedidos/internal/cart"
	ordercontroller "plataforma-pedidos/internal/order/controller"
	"plataforma-pedidos/internal/product"
)

type Controllers struct {
	Products *product.Controller
	Cart     *cart.Controller
	Orders   *ordercontroller.OrdersController
	Checkout *ordercontroller.CheckoutController
	Auth     *auth.Controller
}

func NewRouter(c Controllers, requestTimeout time.Duration, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", c.Products.HandleListProducts)
		r.Get("/products/{productId}", c.Products.HandleGetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", c.Cart.HandleGetCart)
			r.Delete("/", c.Cart.HandleReset)
			r.Post("/items", c.Cart.HandleAddItem)
			r.Patch("/items/{productId}", c.Cart.HandleUpdateQuantity)
			r.Delete("/items/{productId}", c.Cart.HandleRemoveItem)
			r.Put("/client", c.Cart.HandleSaveClient)
			r.Get("/location", c.Cart.HandleLocation)
		})

		r.Post("/checkout", c.Checkout.HandleCheckout)
	})

	r.Route("/rpc", func(r chi.Router) {
		r.Post("/orders.create", c.Orders.HandleCreate)
		r.Get("/orders.getAll", c.Orders.HandleGetAll)
		r.Post("/auth.login", c.Auth.HandleLogin)
		r.Get("/auth.me", c.Auth.HandleMe)
		r.Post("/auth.logout", c.Auth.HandleLogout)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
