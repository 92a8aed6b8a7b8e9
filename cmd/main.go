package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/handler"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	tlspkg "github.com/cloud-wave-best-zizon/storefront-service/pkg/tls"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Logger 초기화
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	// Repository, Service, Handler 초기화
	userRepo := repository.NewUserRepository(dynamoClient, cfg.UserTableName)
	productRepo := repository.NewProductRepository(dynamoClient, cfg.ProductTableName)
	orderRepo := repository.NewOrderRepository(dynamoClient, cfg.OrderTableName, cfg.ProductTableName)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	var publisher service.OrderEventPublisher
	var producer *events.KafkaProducer
	if cfg.EventsEnabled {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = producer
	}

	userService := service.NewUserService(userRepo, logger)
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, publisher, logger)

	authHandler := handler.NewAuthHandler(userService, issuer, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Gin Router 설정
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)

		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})

		authed := v1.Group("", middleware.RequireAuth(issuer))
		{
			authed.GET("/auth/me", authHandler.Me)

			authed.POST("/products", productHandler.CreateProduct)
			authed.PUT("/products/:id", productHandler.UpdateProduct)

			authed.POST("/orders", orderHandler.PlaceOrder)
			authed.GET("/orders", orderHandler.ListOrders)
			authed.GET("/orders/:id", orderHandler.GetOrder)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	tlsConfig, err := tlspkg.LoadTLSConfig(&cfg.TLS, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))

		var serveErr error
		if tlsConfig != nil {
			srv.TLSConfig = tlsConfig
			go tlspkg.WatchCertificates(&cfg.TLS, logger)
			serveErr = srv.ListenAndServeTLS("", "")
		} else {
			serveErr = srv.ListenAndServe()
		}
		if serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(serveErr))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if producer != nil {
		_ = producer.Close()
	}
	tlspkg.Cleanup()

	logger.Info("Server exited")
}
