package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/laramoda/storefront-api/internal/checkout"
	"github.com/laramoda/storefront-api/internal/config"
	"github.com/laramoda/storefront-api/internal/database"
	"github.com/laramoda/storefront-api/internal/handler"
	"github.com/laramoda/storefront-api/internal/middleware"
	"github.com/laramoda/storefront-api/internal/repository"
	"github.com/laramoda/storefront-api/internal/service"
	"github.com/laramoda/storefront-api/internal/storage"
	"github.com/laramoda/storefront-api/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(log); err != nil {
		log.Error("storefront api stopped", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := openPostgres(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	log.Info("connected to PostgreSQL")

	applied, err := database.Migrate(ctx, dbPool, log)
	if err != nil {
		return err
	}
	log.Info("migrations applied", "count", applied)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	log.Info("connected to Redis")

	broker, err := openBroker(cfg.RabbitMQ.URL)
	if err != nil {
		return err
	}
	defer broker.Close()
	log.Info("connected to RabbitMQ")

	images, err := newImageStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("setup %s image storage: %w", cfg.Storage.Driver, err)
	}

	if err := handler.RegisterValidators(); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	cartRepo := repository.NewCartRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	historyRepo := repository.NewOrderHistoryRepository(dbPool)

	whatsapp := checkout.NewWhatsApp(cfg.Store.WhatsAppNumber, cfg.Store.Name)
	productSvc := service.NewProductService(productRepo, images, redisClient, log)
	userSvc := service.NewUserService(userRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, historyRepo, userSvc,
		worker.NewPublisher(broker.publish), whatsapp, cfg.Store.StrictOrderTransitions, log)

	h := routes{
		user:     handler.NewUserHandler(userSvc, log),
		product:  handler.NewProductHandler(productSvc, cfg.Storage.MaxImageBytes, log),
		cart:     handler.NewCartHandler(service.NewCartService(cartRepo, productRepo, userSvc), log),
		order:    handler.NewOrderHandler(orderSvc, log),
		checkout: handler.NewCheckoutHandler(service.NewCheckoutService(productSvc, whatsapp), log),
		admin:    handler.NewAdminHandler(service.NewAdminService(orderRepo, productSvc), log),
		health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": dbPool.Ping,
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
			"rabbitmq": broker.ping,
		}),
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Server.MaxUploadMemory
	if local, ok := images.(*storage.LocalStore); ok {
		router.Static(cfg.Storage.PublicURL, local.Dir())
	}
	h.register(router, middleware.AuthMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer))

	orderWorker := worker.NewOrderWorker(broker.consume, historyRepo, worker.NewRedisDeduper(redisClient), log)
	if err := orderWorker.Start(ctx); err != nil {
		return err
	}
	defer orderWorker.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// broker holds one channel for the worker's consumer and one for publishing,
// so a slow consumer never blocks request handlers.
type broker struct {
	conn    *amqp.Connection
	consume *amqp.Channel
	publish *amqp.Channel
}

func openBroker(url string) (*broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	b := &broker{conn: conn}
	if b.consume, err = conn.Channel(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open consume channel: %w", err)
	}
	if err := worker.SetupRabbitMQ(b.consume); err != nil {
		conn.Close()
		return nil, err
	}
	if b.publish, err = conn.Channel(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open publish channel: %w", err)
	}
	return b, nil
}

func (b *broker) ping(context.Context) error {
	if b.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

// Close closes the channels along with the connection.
func (b *broker) Close() error { return b.conn.Close() }

func newImageStore(cfg config.StorageConfig) (storage.ImageStore, error) {
	if cfg.Driver == "s3" {
		return storage.NewS3Store(cfg.S3Region, cfg.S3Endpoint, cfg.S3Bucket)
	}
	return storage.NewLocalStore(cfg.Dir, cfg.PublicURL)
}
