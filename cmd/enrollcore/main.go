package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/edupanel/enrollcore/internal/clients"
	"github.com/edupanel/enrollcore/internal/config"
	"github.com/edupanel/enrollcore/internal/deps"
	"github.com/edupanel/enrollcore/internal/idempotency"
	"github.com/edupanel/enrollcore/internal/server"
	"github.com/edupanel/enrollcore/internal/service"
	"github.com/edupanel/enrollcore/internal/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.NewConfig()
	dependencies := deps.NewDependencies(cfg.Key)

	store, err := storage.NewPostgresStorage(ctx, cfg.DatabaseURI)
	if err != nil {
		cfg.Logger.Fatal(err)
	}

	catalog := clients.NewCatalogClient(cfg.CatalogAddress)
	offers := clients.NewOfferClient(cfg.OfferAddress)

	var idem idempotency.Store
	if cfg.RedisAddress != "" {
		idem = idempotency.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddress}), "webhook")
	} else {
		idem = idempotency.NewMemoryStore()
	}

	svc := service.NewService(store, catalog, offers, cfg.Logger)

	srv := server.NewServer(svc, idem, cfg, dependencies)
	if err := srv.Run(ctx); err != nil {
		cfg.Logger.Fatal(err)
	}
}
