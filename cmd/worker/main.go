package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/cakeshop/pkg/app"
	"github.com/ghuser/cakeshop/pkg/cache"
	"github.com/ghuser/cakeshop/pkg/config"
	"github.com/ghuser/cakeshop/pkg/database"
	"github.com/ghuser/cakeshop/pkg/events"
	"github.com/ghuser/cakeshop/pkg/logger"
	"github.com/ghuser/cakeshop/pkg/telemetry"
	catalogEvents "github.com/ghuser/cakeshop/services/catalog/domain/events"
	orderEvents "github.com/ghuser/cakeshop/services/orders/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		catalogEvents.TopicItemCreated:      handleItemCreated(a),
		orderEvents.TopicOrderPlaced:        handleOrderPlaced(a),
		orderEvents.TopicOrderStatusChanged: handleOrderStatusChanged(a),
	}

	names := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
		names = append(names, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", names)
	return nil
}

// handleItemCreated returns a handler for catalog.item.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache so subsequent catalog reads hit the cache.
func handleItemCreated(a *app.Application) func(context.Context, *message.Message) error {
	catalogCache := cache.NewCatalogCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt catalogEvents.ItemCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := catalogCache.Set(ctx, &cache.CachedCatalogItem{
			ID:          evt.ItemID,
			Name:        evt.Name,
			UnitPrice:   evt.UnitPrice,
			Flavour:     evt.Flavour,
			Description: evt.Description,
			CreatedAt:   evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for catalog.item.created",
				"item_id", evt.ItemID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID)
		}

		return nil
	}
}

// handleOrderPlaced records placed orders in the audit log.
func handleOrderPlaced(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderEvents.OrderPlacedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "order placed",
			"order_id", evt.OrderID,
			"user_id", evt.UserID,
			"item_id", evt.ItemID,
			"quantity", evt.Quantity,
			"total_price", evt.TotalPrice,
		)
		return nil
	}
}

// handleOrderStatusChanged records lifecycle transitions in the audit log.
func handleOrderStatusChanged(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderEvents.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "order status changed",
			"order_id", evt.OrderID,
			"user_id", evt.UserID,
			"old_status", evt.OldStatus,
			"new_status", evt.NewStatus,
		)
		return nil
	}
}
