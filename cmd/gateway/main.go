package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/storekit/multisafepay-gateway/docs"
	"github.com/storekit/multisafepay-gateway/internal/config"
	"github.com/storekit/multisafepay-gateway/internal/gateway"
	"github.com/storekit/multisafepay-gateway/internal/gateway/domain"
	"github.com/storekit/multisafepay-gateway/internal/gateway/handler"
	"github.com/storekit/multisafepay-gateway/kafka"
	"github.com/storekit/multisafepay-gateway/pkg/database"
	"github.com/storekit/multisafepay-gateway/pkg/logger"
	"github.com/storekit/multisafepay-gateway/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	isDevelopment := cfg.Environment == "development"
	logger.Init(cfg.ServiceName, isDevelopment)
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting gateway service")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&domain.Order{},
		&domain.OrderItem{},
		&domain.OrderHistory{},
		&domain.PaymentRecord{},
		&domain.PaymentMethodConfig{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis holds the checkout-scoped issuer selections
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Kafka publisher is optional; without it status events are not emitted
	var publisher *kafka.Publisher
	if cfg.Kafka.Enabled {
		publisher, err = kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, continuing without events")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Initialize handler with Wire DI
	gatewayHandler, err := gateway.InitializeHandler(db, redisClient, publisher, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().
		Str("shop_base_url", cfg.ShopBaseURL).
		Str("order_prefix", cfg.OrderPrefix).
		Msg("Gateway handler initialized")

	// Start HTTP server
	startHTTPServer(gatewayHandler, sqlDB, cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(gatewayHandler *handler.GatewayHandler, db *sql.DB, port string) {
	router := mux.NewRouter()

	handler.RegisterMiddlewares(router, handler.DefaultMiddlewareConfig())

	gatewayHandler.RegisterRoutes(router)

	gatewayHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	handler.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	go func() {
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}
