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

	"agri-connect/internal/config"
	appmiddleware "agri-connect/internal/middleware"
	"agri-connect/internal/models"
	"agri-connect/internal/modules/notifications"
	"agri-connect/internal/modules/orders"
	"agri-connect/internal/modules/pricing"
	"agri-connect/internal/modules/products"
	"agri-connect/internal/modules/routes"
	"agri-connect/internal/modules/sms"
	"agri-connect/internal/modules/users"
	"agri-connect/pkg/geo"
	"agri-connect/pkg/logger"
	"agri-connect/pkg/payment"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// main is the application composition root: it loads configuration, opens the
// database pool, wires every module's repository/service/handler chain, and
// starts the HTTP server alongside the price fluctuation engine.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatalw("failed to create database pool", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		zlog.Fatalw("failed to reach database", "error", err)
	}

	// Payments fall back to a simulated processor when no Stripe key is set,
	// which keeps local development working end to end.
	var payments payment.ServiceInterface
	if cfg.StripeAPIKey != "" {
		payments = payment.NewStripeService(cfg.StripeAPIKey)
	} else {
		zlog.Warn("STRIPE_API_KEY not set, using simulated payment processor")
		payments = payment.NewSimulatedService()
	}

	userRepo := users.NewRepository(pool)
	productRepo := products.NewRepository(pool)
	orderRepo := orders.NewRepository(pool)
	routeRepo := routes.NewRepository(pool)
	notificationRepo := notifications.NewRepository(pool)
	pricingRepo := pricing.NewRepository(pool)
	smsRepo := sms.NewRepository(pool)

	productService := products.NewService(productRepo)
	userService := users.NewService(userRepo, productService, cfg.JWTSecret)
	notificationService := notifications.NewService(notificationRepo)
	orderService := orders.NewService(orderRepo, productService, notificationService, payments, zlog)
	routeService := routes.NewService(routeRepo, geo.Point{Lat: cfg.DepotLat, Lng: cfg.DepotLng}, zlog)
	pricingService := pricing.NewService(pricingRepo, nil, zlog)
	smsService := sms.NewService(smsRepo, zlog)

	userHandler := users.NewHandler(userService)
	productHandler := products.NewHandler(productService)
	orderHandler := orders.NewHandler(orderService)
	routeHandler := routes.NewHandler(routeService)
	notificationHandler := notifications.NewHandler(notificationService)
	smsHandler := sms.NewHandler(smsService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.ClientOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.ClientOrigin},
			AllowCredentials: true,
		}))
	} else {
		e.Use(middleware.CORS())
	}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Agri-Connect API is running")
	})

	api := e.Group("/api")
	jwt := appmiddleware.JWT(cfg.JWTSecret)

	auth := api.Group("/auth")
	auth.POST("/register", userHandler.Register)
	auth.POST("/login", userHandler.Login)

	userGroup := api.Group("/users", jwt)
	userGroup.GET("/me", userHandler.GetMe)
	userGroup.PUT("/profile", userHandler.UpdateMe)
	userGroup.GET("/farmer/:farmerId", userHandler.GetFarmerProfile)

	productGroup := api.Group("/products")
	productGroup.GET("", productHandler.List)
	productGroup.GET("/:productId", productHandler.Get)
	productGroup.POST("", productHandler.Create, jwt, appmiddleware.RequireRole(models.RoleFarmer, models.RoleAdmin))
	productGroup.PATCH("/:productId", productHandler.Update, jwt)
	productGroup.PATCH("/:productId/price", productHandler.UpdatePrice, jwt)
	productGroup.DELETE("/:productId", productHandler.Delete, jwt)

	orderGroup := api.Group("/orders", jwt)
	orderGroup.POST("", orderHandler.Create)
	orderGroup.GET("", orderHandler.ListMyOrders)
	orderGroup.GET("/:orderId", orderHandler.Get)
	orderGroup.PATCH("/:orderId", orderHandler.Update)

	routeGroup := api.Group("/routes", jwt, appmiddleware.RequireRole(models.RoleLogistics, models.RoleAdmin))
	routeGroup.GET("/optimize", routeHandler.Optimize)

	notificationGroup := api.Group("/notifications", jwt)
	notificationGroup.GET("", notificationHandler.List)
	notificationGroup.GET("/unread-count", notificationHandler.UnreadCount)
	notificationGroup.PATCH("/:notificationId/read", notificationHandler.MarkRead)
	notificationGroup.PATCH("/read-all", notificationHandler.MarkAllRead)

	api.POST("/sms/webhook", smsHandler.Webhook)

	go pricingService.Run(ctx)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("server stopped", "error", err)
		}
	}()
	zlog.Infow("server started", "port", cfg.ServerPort)

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Errorw("graceful shutdown failed", "error", err)
	}
}
