package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wearly/backend/pkg/metrics"
)

type RouterConfig struct {
	Carts     CartOperations
	Checkouts CheckoutOperations
	Orders    OrderOperations
	Products  ProductOperations
	JWTSecret string
	Timeout   time.Duration
	Metrics   *metrics.ServerMetrics
	Log       *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	cartHandler := NewCartHandler(cfg.Carts, cfg.Log, cfg.Timeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkouts, cfg.Log, cfg.Timeout)
	ordersHandler := NewOrdersHandler(cfg.Orders, cfg.Log, cfg.Timeout)
	productHandler := NewProductHandler(cfg.Products, cfg.Log, cfg.Timeout)

	auth := AuthMiddleware(cfg.JWTSecret)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(MetricsMiddleware(cfg.Metrics))
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Post("/", cartHandler.AddItem)
			r.Put("/", cartHandler.UpdateItem)
			r.Delete("/", cartHandler.RemoveItem)
			r.Get("/", cartHandler.GetCart)
			r.With(auth).Post("/merge", cartHandler.Merge)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", checkoutHandler.Create)
			r.Put("/{id}/pay", checkoutHandler.Pay)
			r.Post("/{id}/finalize", checkoutHandler.Finalize)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth)
			r.Get("/my-orders", ordersHandler.MyOrders)
			r.Get("/{id}", ordersHandler.GetByID)
		})

		r.Route("/products", func(r chi.Router) {
			r.With(auth).Post("/", productHandler.Create)
			r.Get("/{id}", productHandler.GetByID)
		})
	})

	return r
}
