package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mvaldivia/calzado-store/pkg/idempotency"
	"github.com/mvaldivia/calzado-store/pkg/logging"
	"github.com/mvaldivia/calzado-store/pkg/metrics"
	"github.com/mvaldivia/calzado-store/pkg/shutdown"
	"github.com/mvaldivia/calzado-store/pkg/tracing"

	cartmem "github.com/mvaldivia/calzado-store/internal/cart/memory"
	catalogmem "github.com/mvaldivia/calzado-store/internal/catalog/memory"
	"github.com/mvaldivia/calzado-store/internal/checkout"
	orderkafka "github.com/mvaldivia/calzado-store/internal/order/kafka"
	ordermem "github.com/mvaldivia/calzado-store/internal/order/memory"
	"github.com/mvaldivia/calzado-store/internal/stats"
	storehttp "github.com/mvaldivia/calzado-store/internal/transport/http"
)

func main() {
	log := logging.New("storefront")

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Configuration
	httpAddr := env("HTTP_ADDR", ":8080")
	kafkaAddr := env("KAFKA_ADDR", "")
	orderTopic := env("ORDER_TOPIC", "storefront.orders")
	redisAddr := env("REDIS_ADDR", "")

	tp, err := tracing.Init("storefront", log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	// In-memory state, constructed fresh per process and seeded with
	// the launch catalog.
	catalog := catalogmem.NewStore()
	catalogmem.Seed(catalog)
	cart := cartmem.NewStore()
	ledger := ordermem.NewLedger()

	reg := metrics.NewRegistry()

	// Order events: published only when a broker is configured.
	var publisher checkout.EventPublisher = checkout.NopPublisher{}
	if kafkaAddr != "" {
		writer := orderkafka.NewWriter(strings.Split(kafkaAddr, ","), orderTopic)
		defer writer.Close()
		publisher = orderkafka.NewPublisher(log, writer)
		log.Info("order events enabled", "topic", orderTopic)
	}

	// Checkout replay guard: enabled only when Redis is configured.
	var idem idempotency.Checker
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer rdb.Close()
		idem = idempotency.NewStore(rdb, 24*time.Hour)
		log.Info("checkout idempotency enabled", "redis", redisAddr)
	}

	co := checkout.NewService(log, catalog, cart, ledger, publisher, reg)
	st := stats.NewService(catalog, ledger)
	handler := storehttp.NewHandler(log, catalog, cart, co, st, reg, idem)

	srv := &http.Server{
		Addr:         httpAddr,
		Handler:      handler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", httpAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("storefront shutdown complete")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
