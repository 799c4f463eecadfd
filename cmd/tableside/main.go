package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tableside/internal/api"
	"tableside/internal/cart"
	"tableside/internal/config"
	"tableside/internal/connections/database"
	"tableside/internal/connections/rabbitmq"
	redisconn "tableside/internal/connections/redis"
	"tableside/internal/httpx"
	"tableside/internal/identity"
	"tableside/internal/logger"
	"tableside/internal/services/menu"
	"tableside/internal/services/notification"
	"tableside/internal/services/ordering"
	"tableside/internal/services/review"
)

func main() {
	mode := flag.String("mode", "api", "api | notification-subscriber")
	flag.Parse()

	lg := logger.New("tableside-" + *mode)

	cfg, err := config.Load()
	if err != nil {
		lg.Error("config_load_failed", "", err, nil)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "api":
		if err := runAPI(ctx, cfg, lg); err != nil {
			lg.Error("fatal", "", err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runSubscriber(ctx, cfg, lg); err != nil {
			lg.Error("fatal", "", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode must be api or notification-subscriber")
		os.Exit(2)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	lg.Info("database_connected", "", map[string]any{
		"host": cfg.Database.Host, "database": cfg.Database.Name,
	})

	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer rmq.Close()
	if err := rmq.DeclareTopology(); err != nil {
		return err
	}
	lg.Info("rabbitmq_connected", "", map[string]any{"host": cfg.RabbitMQ.Host})

	// The menu works without Redis, just slower.
	var menuCache menu.Cache
	if rdb, err := redisconn.Connect(ctx, cfg.Redis); err != nil {
		lg.Error("redis_unavailable", "", err, map[string]any{"addr": cfg.Redis.Addr})
	} else {
		defer rdb.Close()
		menuCache = menu.NewRedisCache(rdb)
		lg.Info("redis_connected", "", map[string]any{"addr": cfg.Redis.Addr})
	}

	menuSvc := menu.NewService(menu.NewRepository(pool), menuCache, cfg.MenuCacheTTL, lg)
	orderRepo := ordering.NewRepository(pool)
	notifier := notification.NewTrigger(notification.NewAMQPChannel(rmq), lg)
	orderSvc := ordering.NewService(orderRepo, notifier, lg, cfg.OrderLineTimeout, cfg.CompensateOnPartialFailure)
	reviewSvc := review.NewService(orderRepo, lg)

	handler := api.Router(api.Handlers{
		Menu:     menu.NewHandler(menuSvc),
		Ordering: ordering.NewHandler(cart.NewSessions(), menuSvc, orderSvc, identity.HeaderProvider{}),
		Review:   review.NewHandler(reviewSvc),
	}, lg)

	lg.Info("service_started", "", map[string]any{"port": cfg.HTTPPort})
	return httpx.New(fmt.Sprintf(":%d", cfg.HTTPPort), handler).Run(ctx)
}

func runSubscriber(ctx context.Context, cfg *config.Config, lg *logger.Logger) error {
	rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer rmq.Close()
	if err := rmq.DeclareTopology(); err != nil {
		return err
	}

	lg.Info("service_started", "", map[string]any{"queue": rabbitmq.NotificationsQueue})
	return notification.NewSubscriber(rmq, lg).Run(ctx)
}
