package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dzmitrysafronau/shop-project/configs"
	"github.com/dzmitrysafronau/shop-project/internal/adapter/cache"
	apphttp "github.com/dzmitrysafronau/shop-project/internal/adapter/http"
	"github.com/dzmitrysafronau/shop-project/internal/adapter/http/middleware"
	"github.com/dzmitrysafronau/shop-project/internal/adapter/queue"
	"github.com/dzmitrysafronau/shop-project/internal/adapter/repo"
	"github.com/dzmitrysafronau/shop-project/internal/logging"
	"github.com/dzmitrysafronau/shop-project/internal/security"
	"github.com/dzmitrysafronau/shop-project/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	l := logging.New("app")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("mysql ping: %w", err)
	}

	if err := runMigrations(db, cfg.MySQL.MigrationsDir); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	l.Info("shop-api: starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	// init rabbitmq: producer for order.created, consumer logging the
	// notifications
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}
	if err := setupNotifications(ch); err != nil {
		return nil, nil, err
	}

	// infra
	productRepo := repo.NewMySQLProductRepo(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	userRepo := repo.NewMySQLUserRepo(db)
	pageCache := cache.NewRedisPageCache(rdb, cfg.Cache.ProductListTTL)

	hasher := security.NewBcryptHasher()
	tokens := security.NewTokenService(security.TokenConfig{
		Secret:     cfg.Security.JWTSecret,
		Issuer:     cfg.Security.Issuer,
		Audience:   cfg.Security.Audience,
		AccessTTL:  cfg.Security.AccessTTL,
		RefreshTTL: cfg.Security.RefreshTTL,
	})

	// use cases
	catalogUC := usecase.NewCatalog(productRepo)
	cartUC := usecase.NewCart(cartRepo, productRepo)
	checkoutUC := usecase.NewCheckout(orderRepo, producer)
	ordersUC := usecase.NewOrders(orderRepo)
	registerUC := usecase.NewRegister(userRepo, hasher)

	// handlers + router + middleware
	authz := middleware.NewAuthz(tokens)
	productH := apphttp.NewProductHandler(catalogUC, pageCache, cfg.Media.BaseURL)
	cartH := apphttp.NewCartHandler(cartUC, authz, cfg.Media.BaseURL)
	orderH := apphttp.NewOrderHandler(checkoutUC, ordersUC)
	authH := apphttp.NewAuthHandler(registerUC, userRepo, hasher, tokens)
	healthH := apphttp.NewHealthHandler(db.PingContext, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	router := apphttp.NewRouter(productH, cartH, orderH, authH, healthH, authz)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		_ = ch.Close()
		_ = conn.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func runMigrations(db *sql.DB, dir string) error {
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "mysql", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func setupNotifications(ch *amqp091.Channel) error {
	h := queue.NewNotificationHandler(logging.New("notifications"))

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register("order.created.q", queue.JSONHandler[usecase.OrderCreatedMsg]{HandleFunc: h.HandleOrderCreated})

	return router.Start()
}
