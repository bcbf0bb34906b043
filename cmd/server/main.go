// Command server wires the card ledger service: storage, cache, audit sink,
// HTTP surface, and lifecycle. Business logic lives in the internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"cardledger/internal/audit"
	"cardledger/internal/card/cache"
	cardhandler "cardledger/internal/card/handler"
	"cardledger/internal/card/service"
	"cardledger/internal/card/store"
	"cardledger/internal/holder"
	"cardledger/internal/platform/config"
	"cardledger/internal/platform/crypto"
	"cardledger/internal/platform/httpserver"
	"cardledger/internal/platform/logger"
	"cardledger/internal/platform/metrics"
	"cardledger/internal/platform/middleware"
	pgplatform "cardledger/internal/platform/postgres"
	redisplatform "cardledger/internal/platform/redis"
	"cardledger/internal/transport"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	m := metrics.New()

	var (
		cardStore service.Store
		holderDir holder.Directory
		health    []transport.HealthChecker
	)
	if cfg.DatabaseDSN != "" {
		if cfg.CardMasterKey == "" {
			return errors.New("CARD_MASTER_KEY is required when DATABASE_DSN is set")
		}
		db, err := pgplatform.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		cipher, err := crypto.NewAES([]byte(cfg.CardMasterKey))
		if err != nil {
			return err
		}
		cardStore = store.NewPostgres(db, cipher)
		holderDir = holder.NewPostgres(db)
		health = append(health, pingChecker(db))
		log.Info("using postgres store")
	} else {
		cardStore = store.NewInMemoryStore()
		holderDir = holder.NewInMemoryDirectory()
		log.Info("using in-memory store")
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
	}

	redisClient, err := redisplatform.New(cfg.Redis())
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithListingCache(cache.NewRedis(redisClient.Client, log)))
		health = append(health, redisClient.Health)
		log.Info("listing cache enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		opts = append(opts, service.WithAuditPublisher(publisher))
		log.Info("audit publisher enabled", "topic", cfg.AuditTopic)
	}

	cards, err := service.New(cardStore, holderDir, opts...)
	if err != nil {
		return err
	}

	// The in-memory store starts empty, so it always gets the demo holders.
	if cfg.SeedDemoData || cfg.DatabaseDSN == "" {
		if err := holder.Seed(ctx, holderDir, log); err != nil {
			return err
		}
	}

	router := transport.NewRouter(transport.Deps{
		Cards:         cardhandler.New(cards, log),
		Authenticator: middleware.NewAuthenticator(cfg.JWTSigningKey, log),
		Health:        health,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func pingChecker(db *sql.DB) transport.HealthChecker {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
