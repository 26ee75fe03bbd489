package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"telefile/paydrop/internal/app/correlation"
	"telefile/paydrop/internal/app/delivery"
	"telefile/paydrop/internal/app/fulfillment"
	"telefile/paydrop/internal/app/gateway"
	"telefile/paydrop/internal/app/orders"
	"telefile/paydrop/internal/app/reclaimer"
	"telefile/paydrop/internal/app/server"
	"telefile/paydrop/internal/app/server/handlers"
	"telefile/paydrop/internal/app/signature"
	"telefile/paydrop/internal/app/workers"
	"telefile/paydrop/internal/app/workers/processors"
	"telefile/paydrop/internal/config"
)

func main() {
	cfg := config.NewConfig()

	ctx := context.Background()

	cacheOpts := redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Cache.Host, cfg.Cache.Port),
		Password:     cfg.Cache.Password,
		DB:           0,
		PoolSize:     cfg.Workers.FulfillmentCount + 10,
		MinIdleConns: 10,
	}

	rdb := redis.NewClient(&cacheOpts)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		panic(err)
	}

	// Worker queue
	fulfillmentEventsCh := make(chan any, cfg.Workers.FulfillmentBufferSize)

	// Stores
	correlationStore := correlation.NewRedisStore(rdb)
	balanceStore := delivery.NewRedisBalanceStore(rdb)

	// Outbound clients
	gatewayClient := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.Currency, 5*time.Second)

	// Delivery sink per deployment mode
	var sink delivery.Sink
	switch cfg.Delivery.Mode {
	case "balance":
		sink = delivery.NewBalanceSink(balanceStore)
	default:
		sink = delivery.NewTelegramSink(cfg.Delivery.TelegramAPIURL, cfg.Delivery.BotToken, cfg.Delivery.FileURL, cfg.Delivery.Caption, 10*time.Second)
	}

	// Core services
	orderService := orders.NewOrderService(gatewayClient, correlationStore)
	executor := fulfillment.NewExecutor(correlationStore, sink)
	replayer := fulfillment.NewReplayer(correlationStore, gatewayClient, executor)

	verifier, err := signature.NewVerifier(cfg.Webhook.SignatureScheme, cfg.Webhook.Secret, cfg.Webhook.HashFields)
	if err != nil {
		panic(err)
	}

	// Workers
	fulfillmentProcessor := processors.NewFulfillmentProcessor(executor)
	fulfillmentOrchestrator := workers.NewOrchestrator(cfg.Workers.FulfillmentCount, fulfillmentEventsCh, fulfillmentProcessor)
	fulfillmentOrchestrator.StartWorkers(ctx)

	// Stale claim recovery
	reclaimer.NewService(correlationStore, rdb, cfg.Reclaim.Interval, cfg.Reclaim.StaleAfter)

	h := handlers.NewHandlers(cfg, orderService, verifier, balanceStore, replayer, fulfillmentEventsCh)

	srv := server.NewServer(cfg, h)
	log.Printf("Listening on :%s (delivery mode: %s)\n", cfg.Server.Port, cfg.Delivery.Mode)
	if err := srv.Run(); err != nil {
		panic(err)
	}

	close(fulfillmentEventsCh)
}
