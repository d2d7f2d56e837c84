package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transfer-risk-engine/config"
	httpHandler "transfer-risk-engine/internal/adapter/http/handler"
	"transfer-risk-engine/internal/adapter/http/middleware"
	kafkaMessaging "transfer-risk-engine/internal/adapter/messaging/kafka"
	memStorage "transfer-risk-engine/internal/adapter/storage/memory"
	pgStorage "transfer-risk-engine/internal/adapter/storage/postgres"
	redisStorage "transfer-risk-engine/internal/adapter/storage/redis"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/internal/service"
	"transfer-risk-engine/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// repositories is the storage surface the evaluators read from.
type repositories struct {
	history  ports.TransferHistoryRepository
	accounts ports.AccountRepository
	users    ports.UserRepository
	alerts   ports.AlertRepository
	health   []ports.HealthChecker
	close    func()
}

func main() {
	cfg, err := config.Load(os.Getenv("TRE_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting Transfer Risk Engine")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret is required (TRE_JWT_SECRET)")
	}

	policy, err := service.PolicyFromConfig(cfg.Risk)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid risk policy")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer repos.close()

	healthCheckers := repos.health

	// Optional Redis: alert dedup and API rate limiting
	var (
		deduper     ports.AlertDeduper
		rateLimiter middleware.Limiter
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		deduper = redisStorage.NewAlertDedupStore(rdb)
		rateLimiter = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Optional Kafka: alert fan-out
	var publisher ports.AlertPublisher
	if cfg.Kafka.Enabled {
		pub, err := kafkaMessaging.NewAlertPublisher(cfg.Kafka, logger.Component(log, "kafka"))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure Kafka publisher")
		}
		defer func() {
			if err := pub.Close(); err != nil {
				log.Warn().Err(err).Msg("Kafka publisher close failed")
			}
		}()
		publisher = pub
		healthCheckers = append(healthCheckers, kafkaMessaging.NewHealthCheck(cfg.Kafka.Brokers))
	}

	// Services
	alertSink := service.NewAlertService(repos.alerts, deduper, publisher, cfg.Alerts.DedupWindow, logger.Component(log, "alerts"))
	ipRep := service.NewHeuristicIPReputation(repos.history, policy.QueryTimeout)
	deviceRep := service.NewHeuristicDeviceReputation(repos.history, policy.QueryTimeout)

	complianceSvc := service.NewComplianceService(repos.history, repos.accounts, repos.users, alertSink, policy, logger.Component(log, "compliance"))
	fraudSvc := service.NewFraudService(repos.history, ipRep, deviceRep, alertSink, policy, logger.Component(log, "fraud"))
	accountSvc := service.NewAccountRiskService(repos.history, repos.accounts, repos.users, repos.alerts, policy, logger.Component(log, "account_risk"))
	guardSvc := service.NewGuardService(complianceSvc, fraudSvc, logger.Component(log, "guard"))
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Compliance:  complianceSvc,
		Fraud:       fraudSvc,
		Accounts:    accountSvc,
		Guard:       guardSvc,
		TokenSvc:    tokenSvc,
		RateLimiter: rateLimiter,
		RateLimit: middleware.RateLimitRule{
			Limit:  int64(cfg.RateLimit.Requests),
			Window: cfg.RateLimit.Window,
		},
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
		return
	}
	log.Info().Msg("Server exited")
}

// openStorage builds the repositories for cfg.Storage.Driver.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		return &repositories{
			history:  pgStorage.NewTransferRepo(pool),
			accounts: pgStorage.NewAccountRepo(pool),
			users:    pgStorage.NewUserRepo(pool),
			alerts:   pgStorage.NewAlertRepo(pool),
			health:   []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
			close:    pool.Close,
		}, nil

	case "memory":
		store := memStorage.New()
		if cfg.Storage.SeedFile != "" {
			if err := store.LoadFile(cfg.Storage.SeedFile); err != nil {
				return nil, err
			}
			log.Info().Str("seed_file", cfg.Storage.SeedFile).Msg("In-memory store seeded")
		}
		return &repositories{
			history:  store.Transfers,
			accounts: store.Accounts,
			users:    store.Users,
			alerts:   store.Alerts,
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
