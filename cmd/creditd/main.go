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
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"
	grpclib "google.golang.org/grpc"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/usecase"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/adapter"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/config"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/kafka"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/lock"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/messaging"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/persistence/memory"
	pgRepo "github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/persistence/postgres"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/scheduler"
	grpcPresentation "github.com/aurasystemsai/aura-core-monolith-sub005/internal/presentation/grpc"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/presentation/rest"
	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/auth"
	pkgkafka "github.com/aurasystemsai/aura-core-monolith-sub005/pkg/kafka"
	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/observability"
	pkgpostgres "github.com/aurasystemsai/aura-core-monolith-sub005/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("aura-credit exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Info("starting aura-credit",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"store", cfg.StoreBackend,
		"lock", cfg.LockBackend,
		"events", cfg.EventBackend,
	)

	// Telemetry.
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracing(context.Background()) }() //nolint:errcheck // best-effort
	}
	meterProvider, metricsHandler, err := observability.InitMetrics(cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort
	meter := meterProvider.Meter(cfg.ServiceName)

	checks := map[string]rest.ReadinessCheck{}

	// Storage.
	scoreRepo, obligationRepo, closeStore, err := openStore(ctx, cfg, logger, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	// Coordination.
	locker, closeLocker, err := openLocker(ctx, cfg, logger, checks)
	if err != nil {
		return err
	}
	defer closeLocker()

	// Events.
	publisher, closePublisher, err := openPublisher(cfg, meter, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Behavioural data.
	clock := port.Clock(time.Now)
	var provider port.BehavioralDataProvider
	if cfg.CDP.BaseURL != "" {
		provider = adapter.NewCDPClient(adapter.CDPConfig{
			BaseURL:    cfg.CDP.BaseURL,
			Timeout:    cfg.CDP.Timeout,
			MaxRetries: cfg.CDP.MaxRetries,
		}, nil, logger)
	} else {
		logger.Warn("CDP_BASE_URL not set, using deterministic stub behavioural data")
		provider = adapter.NewStubCDP(clock)
	}

	// Wire use cases.
	resolver := service.NewRiskTierResolver()
	ids := adapter.UUIDGenerator{}
	deps := usecase.OriginationDeps{
		ScoreRepo:      scoreRepo,
		ObligationRepo: obligationRepo,
		Originator:     service.NewProductOriginator(resolver),
		Publisher:      publisher,
		IDs:            ids,
		Clock:          clock,
		Logger:         logger,
	}
	useCases := grpcPresentation.UseCases{
		CalculateScore: usecase.NewCalculateCreditScoreUseCase(
			scoreRepo, provider, service.NewScoreCalculator(resolver), publisher, ids, clock, logger),
		GetLatestScore:          usecase.NewGetLatestScoreUseCase(scoreRepo),
		ListScoreHistory:        usecase.NewListScoreHistoryUseCase(scoreRepo),
		OriginateNetTerms:       usecase.NewOriginateNetTermsUseCase(deps),
		OriginateWorkingCapital: usecase.NewOriginateWorkingCapitalUseCase(deps),
		OriginateRevenueBased:   usecase.NewOriginateRevenueBasedUseCase(deps),
		RecordPayment:           usecase.NewRecordPaymentUseCase(obligationRepo, locker, publisher, ids, clock, logger),
		PaySupplier:             usecase.NewPaySupplierUseCase(obligationRepo, locker, publisher, clock, logger),
		GetObligation:           usecase.NewGetObligationUseCase(obligationRepo),
		ListObligations:         usecase.NewListObligationsUseCase(obligationRepo),
		GetDashboard:            usecase.NewGetDashboardUseCase(scoreRepo, obligationRepo),
		ScanPaymentsDue:         usecase.NewScanPaymentsDueUseCase(obligationRepo, publisher, clock, logger),
	}

	// gRPC server.
	interceptor, err := grpcPresentation.ObservabilityInterceptor(meter, logger)
	if err != nil {
		return err
	}
	interceptors := []grpclib.UnaryServerInterceptor{interceptor}
	authInterceptor, err := newAuthInterceptor(cfg.Auth, logger)
	if err != nil {
		return err
	}
	if authInterceptor != nil {
		interceptors = append(interceptors, authInterceptor)
	}
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewCreditHandler(useCases, logger),
		grpcPresentation.ServerOptions{
			TLSCertFile:  cfg.GRPC.TLSCertFile,
			TLSKeyFile:   cfg.GRPC.TLSKeyFile,
			Reflection:   cfg.GRPC.Reflection,
			Interceptors: interceptors,
		},
		logger,
	)
	if err != nil {
		return err
	}

	// HTTP server (health, metrics, read API).
	var limiter *rest.RateLimiter
	if cfg.HTTPRateLimit > 0 {
		limiter = rest.NewRateLimiter(cfg.HTTPRateLimit)
	}
	router := rest.NewRouter(
		rest.NewHealthHandler(checks, logger),
		rest.NewCreditHandler(rest.QueryUseCases{
			GetLatestScore:   useCases.GetLatestScore,
			ListScoreHistory: useCases.ListScoreHistory,
			GetObligation:    useCases.GetObligation,
			ListObligations:  useCases.ListObligations,
			GetDashboard:     useCases.GetDashboard,
		}, logger),
		metricsHandler,
		limiter,
		logger,
	)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Payment-due scan.
	dueScan, err := scheduler.New(cfg.Scheduler.DueScanCron,
		scheduler.NewDueScanJob(useCases.ScanPaymentsDue, cfg.Scheduler.DueScanWindow, logger), logger)
	if err != nil {
		return err
	}
	dueScan.Start()

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server failed", "error", runErr)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := dueScan.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler did not stop cleanly", "error", err)
	}
	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("aura-credit stopped")
	return runErr
}

// newAuthInterceptor returns nil when no JWT key material is configured.
func newAuthInterceptor(cfg config.AuthConfig, logger *slog.Logger) (grpclib.UnaryServerInterceptor, error) {
	authCfg := auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}
	if cfg.JWTPublicKeyFile != "" {
		pemBytes, err := os.ReadFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read JWT public key: %w", err)
		}
		authCfg.PublicKeyPEM = string(pemBytes)
	}
	if !authCfg.Enabled() {
		logger.Warn("JWT_SECRET and JWT_PUBLIC_KEY_FILE not set, gRPC authentication disabled")
		return nil, nil
	}
	svc, err := auth.NewService(authCfg)
	if err != nil {
		return nil, err
	}
	logger.Info("gRPC authentication enabled", "issuer", cfg.JWTIssuer)
	return auth.UnaryServerInterceptor(svc, grpcPresentation.AuthPolicy()), nil
}

func openStore(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	checks map[string]rest.ReadinessCheck,
) (port.CreditScoreRepository, port.ObligationRepository, func(), error) {
	if cfg.StoreBackend == "memory" {
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.NewCreditScoreRepo(), memory.NewObligationRepo(), func() {}, nil
	}

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	checks["postgres"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }

	return pgRepo.NewCreditScoreRepo(pool), pgRepo.NewObligationRepo(pool), pool.Close, nil
}

func openLocker(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	checks map[string]rest.ReadinessCheck,
) (port.ObligationLocker, func(), error) {
	if cfg.LockBackend == "memory" {
		logger.Warn("using in-process obligation locks, run a single replica")
		return lock.NewKeyedMutex(), func() {}, nil
	}

	client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	return lock.NewRedisLocker(client, 0, logger), func() { closeRedis(client, logger) }, nil
}

func closeRedis(client *redis.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Warn("redis close failed", "error", err)
	}
}

func openPublisher(cfg config.Config, meter metric.Meter, logger *slog.Logger) (port.EventPublisher, func(), error) {
	var (
		next    port.EventPublisher
		closeFn = func() {}
	)
	switch cfg.EventBackend {
	case "kafka":
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			TLS:           cfg.Kafka.TLS,
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("kafka producer: %w", err)
		}
		next = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
		closeFn = func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
		}
	default:
		next = messaging.NewLogPublisher(logger)
	}

	metered, err := messaging.NewMeteredPublisher(next, meter)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return metered, closeFn, nil
}
