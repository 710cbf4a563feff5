package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wearly/backend/internal/cache"
	"github.com/wearly/backend/internal/config"
	"github.com/wearly/backend/internal/events"
	apihttp "github.com/wearly/backend/internal/http"
	"github.com/wearly/backend/internal/repository"
	"github.com/wearly/backend/internal/service"
	"github.com/wearly/backend/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName, cfg.MongoMaxPool, cfg.MongoMinPool)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("uri", cfg.MongoURI))

	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	checkoutRepo := repository.NewMongoCheckoutRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	productRepo := repository.NewMongoProductRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)

	var cartCache cache.CartCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		cartCache = cache.NewRedisCache(redisClient)
		logger.Info("cart cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.OrderTopic, logger)
	defer publisher.Close()
	if publisher != nil {
		logger.Info("order events enabled",
			zap.String("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.OrderTopic))
	}

	cartService := service.NewCartService(cartRepo, productRepo, cartCache, logger)
	checkoutService := service.NewCheckoutService(checkoutRepo, orderRepo, cartRepo, cartCache, publisher, logger)
	orderService := service.NewOrderService(orderRepo, userRepo, logger)
	productService := service.NewProductService(productRepo, logger)

	router := apihttp.NewRouter(apihttp.RouterConfig{
		Carts:     cartService,
		Checkouts: checkoutService,
		Orders:    orderService,
		Products:  productService,
		JWTSecret: cfg.JWTSecret,
		Timeout:   cfg.RequestTimeout,
		Metrics:   metrics.NewServerMetrics("api"),
		Log:       logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}
