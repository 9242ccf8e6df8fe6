package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	jwttoken "preservation/internal/jwt_token"
	"preservation/internal/platform/config"
	"preservation/internal/platform/httpserver"
	"preservation/internal/platform/kafka"
	"preservation/internal/platform/logger"
	"preservation/internal/platform/metrics"
	"preservation/internal/platform/postgres"
	redisclient "preservation/internal/platform/redis"
	"preservation/internal/preservation/catalog"
	"preservation/internal/preservation/handler"
	pmetrics "preservation/internal/preservation/metrics"
	"preservation/internal/preservation/service"
	"preservation/internal/preservation/store/duelist"
	memorystore "preservation/internal/preservation/store/memory"
	pgstore "preservation/internal/preservation/store/postgres"
	httptransport "preservation/internal/transport/http"
	audit "preservation/pkg/platform/audit"
	auditmemory "preservation/pkg/platform/audit/store/memory"
	auditpg "preservation/pkg/platform/audit/store/postgres"
	"preservation/pkg/platform/audit/worker"
	"preservation/pkg/platform/middleware/ratelimit"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("preservation server stopped", "error", err)
		os.Exit(1)
	}
}

// backend is the persistence wiring, Postgres or in-memory.
type backend struct {
	tx       service.StoreTx
	tags     service.TagStore
	outbox   audit.Outbox
	workerTx worker.TxRunner
	catalog  interface {
		catalog.Reader
		catalog.Writer
	}
	checks map[string]httptransport.HealthCheck
	close  func()
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	slog.SetDefault(log)
	if cfg.UsesDevSigningKey() {
		log.Warn("using the development JWT signing key; set PRESERVATION_AUTH_JWT_SIGNING_KEY")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	if cfg.Catalog.SeedFile != "" {
		seed, err := catalog.LoadSeedFile(cfg.Catalog.SeedFile)
		if err != nil {
			return err
		}
		if err := seed.Apply(ctx, be.catalog); err != nil {
			return err
		}
		log.Info("catalog seeded", "definitions", len(seed.Definitions), "journeys", len(seed.Journeys))
	}
	reader := catalog.NewCached(be.catalog, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(pmetrics.New()),
	}
	rc, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rc != nil {
		defer rc.Close()
		opts = append(opts, service.WithDueIndex(duelist.New(rc), nil))
		be.checks["redis"] = rc.Health
	} else {
		log.Info("redis not configured; due queries scan the tag store")
	}
	svc := service.New(be.tx, be.tags, reader, reader, opts...)

	httpMetrics := metrics.New()
	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Handler:        handler.New(svc, log),
		Validator:      jwtService.Validator(),
		Limiter:        ratelimit.New(cfg.Server.WritesPerMinute, cfg.Server.WriteBurst, httpMetrics, log),
		Metrics:        httpMetrics,
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AdminToken:     cfg.Server.AdminToken,
		Checks:         be.checks,
	})
	srv := httpserver.New(cfg.Server, router)

	producer, err := kafka.NewProducer(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	if producer != nil {
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting preservation api", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if producer != nil {
		relay := worker.NewWorker(be.outbox, producer,
			worker.WithInterval(cfg.Outbox.Interval),
			worker.WithBatchSize(cfg.Outbox.BatchSize),
			worker.WithTxRunner(be.workerTx),
			worker.WithLogger(log),
		)
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		log.Info("kafka not configured; events stay in the outbox")
	}

	return g.Wait()
}

func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	if cfg.Database.URL == "" {
		log.Warn("database url not configured; using in-memory stores")
		tags := memorystore.NewInMemory()
		outbox := auditmemory.NewInMemoryStore()
		return &backend{
			tx:       service.NewMemoryTx(tags, outbox),
			tags:     tags,
			outbox:   outbox,
			catalog:  catalog.NewInMemory(),
			checks:   map[string]httptransport.HealthCheck{},
			close:    func() {},
		}, nil
	}

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(cfg.Database.URL, log); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	tx := newPostgresTx(pool)
	return &backend{
		tx:       tx,
		tags:     pgstore.New(pool),
		outbox:   auditpg.New(pool),
		workerTx: txRunner{tx: tx},
		catalog:  catalog.NewPostgres(pool),
		checks: map[string]httptransport.HealthCheck{
			"postgres": pool.Ping,
		},
		close: pool.Close,
	}, nil
}
