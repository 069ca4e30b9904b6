package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"canteenWeb/internal/config"
	cartport "canteenWeb/internal/modules/cart/application/port"
	cartusecase "canteenWeb/internal/modules/cart/application/usecase"
	cartinfra "canteenWeb/internal/modules/cart/infrastructure"
	carttransport "canteenWeb/internal/modules/cart/interface"
	discountsusecase "canteenWeb/internal/modules/discounts/application/usecase"
	discountstransport "canteenWeb/internal/modules/discounts/interface"
	guard "canteenWeb/internal/modules/guard/interface"
	menuusecase "canteenWeb/internal/modules/menu/application/usecase"
	menutransport "canteenWeb/internal/modules/menu/interface"
	ordersport "canteenWeb/internal/modules/orders/application/port"
	ordersusecase "canteenWeb/internal/modules/orders/application/usecase"
	orders "canteenWeb/internal/modules/orders/domain"
	orderstransport "canteenWeb/internal/modules/orders/interface"
	"canteenWeb/internal/modules/realtime/application/handler"
	realtimeusecase "canteenWeb/internal/modules/realtime/application/usecase"
	"canteenWeb/internal/modules/realtime/infrastructure"
	realtimetransport "canteenWeb/internal/modules/realtime/interface"
	sessionusecase "canteenWeb/internal/modules/session/application/usecase"
	sessioninfra "canteenWeb/internal/modules/session/infrastructure"
	sessiontransport "canteenWeb/internal/modules/session/interface"
	standsusecase "canteenWeb/internal/modules/stands/application/usecase"
	standstransport "canteenWeb/internal/modules/stands/interface"
	studentsusecase "canteenWeb/internal/modules/students/application/usecase"
	studentstransport "canteenWeb/internal/modules/students/interface"
	"canteenWeb/internal/platform/broker"
	"canteenWeb/internal/platform/canteenapi"
	"canteenWeb/internal/shared/auth"
	"canteenWeb/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, _, err := logging.Setup(logging.Config{
		Directory: cfg.Logging.Directory,
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
	}, time.Now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("canteen api configured", slog.String("baseUrl", cfg.REST.BaseURL), slog.Duration("timeout", cfg.REST.Timeout))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.String("topic", cfg.Kafka.Topic))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := canteenapi.NewClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil)

	cartStore, closeStore, err := newCartStore(ctx, cfg.Cart)
	if err != nil {
		slog.Error("cart store setup failed", slog.String("store", cfg.Cart.Store), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	// Realtime
	hub := infrastructure.NewHub()
	registry := infrastructure.NewHandlerRegistry()
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)
	for _, action := range []string{orders.EventCreated, orders.EventStatusChanged} {
		registry.Register(handler.NewOrderEventsHandler(orders.EventEntity+"."+action, broadcastUC))
	}

	var publisher ordersport.EventPublisher = broadcastUC
	consumers := &sync.WaitGroup{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		consumers = broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, instanceGroup(cfg.Kafka.GroupID), []string{cfg.Kafka.Topic})
	} else {
		slog.Info("no kafka brokers configured, order events stay in process")
	}

	// Use cases
	sessionCache := sessioninfra.NewSessionCache(cfg.Security.SessionTTL)
	validator := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	sessionUC := sessionusecase.NewSessionUseCase(api, validator, sessionCache)
	standsUC := standsusecase.NewStandsUseCase(api)
	menuUC := menuusecase.NewMenuUseCase(api, api)
	discountsUC := discountsusecase.NewDiscountsUseCase(api, api, api)
	ordersUC := ordersusecase.NewOrdersUseCase(api, api, publisher)
	cartUC := cartusecase.NewCartUseCase(cartStore, api, api, publisher)
	studentsUC := studentsusecase.NewStudentsUseCase(api)
	studentsUC.Sessions = sessionUC

	go sweepSessions(ctx, sessionCache, cfg.Security.SessionTTL)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.Requests())
	e.Use(guard.Guard(sessionUC))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/unauthorized", guard.Unauthorized)

	sessiontransport.NewHandler(sessionUC, cfg.Security.CookieSecure).Register(e)
	realtimetransport.NewWebsocketHandler(hub, sessionUC, api, cfg.Websocket.SendBuffer).Register(e)

	standsHandler := standstransport.NewHandler(standsUC)
	menuHandler := menutransport.NewHandler(menuUC)
	discountsHandler := discountstransport.NewHandler(discountsUC)
	ordersHandler := orderstransport.NewHandler(ordersUC)
	cartHandler := carttransport.NewHandler(cartUC)
	studentsHandler := studentstransport.NewHandler(studentsUC, standsUC)

	// Pages and their /api aliases share handlers; the guard answers the /api ones with JSON 401/403.
	for _, prefix := range []string{"", "/api"} {
		stand := e.Group(prefix + "/stand")
		standsHandler.RegisterStand(stand)
		menuHandler.Register(stand)
		discountsHandler.Register(stand)
		ordersHandler.RegisterStand(stand)

		student := e.Group(prefix + "/student")
		studentsHandler.Register(student)
		standsHandler.RegisterStudent(student)
		cartHandler.Register(student)
		ordersHandler.RegisterStudent(student)
	}

	go func() {
		slog.Info("http server starting", slog.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown incomplete", slog.Any("error", err))
	}
	hub.Close()
	cancel()
	consumers.Wait()
}

// newCartStore builds the configured cart store and the function that releases its connections.
func newCartStore(ctx context.Context, cfg config.CartConfig) (cartport.Store, func(), error) {
	switch cfg.Store {
	case config.CartStoreRedis:
		client, err := cartinfra.NewRedisClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("cart store ready", slog.String("store", cfg.Store), slog.String("addr", cfg.RedisAddr))
		return cartinfra.NewRedisStore(client, cfg.TTL), func() { _ = client.Close() }, nil
	case config.CartStorePostgres:
		pool, err := cartinfra.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store, err := cartinfra.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		slog.Info("cart store ready", slog.String("store", cfg.Store))
		return store, pool.Close, nil
	default:
		slog.Info("cart store ready", slog.String("store", config.CartStoreMemory))
		return cartinfra.NewMemoryStore(), func() {}, nil
	}
}

// instanceGroup gives every gateway instance its own consumer group so each one sees every event.
func instanceGroup(base string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = uuid.NewString()[:8]
	}
	return base + "-" + host
}

func sweepSessions(ctx context.Context, cache *sessioninfra.SessionCache, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := cache.Sweep(); removed > 0 {
				slog.Debug("session cache swept", slog.Int("removed", removed))
			}
		}
	}
}
