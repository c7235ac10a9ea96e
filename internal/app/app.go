package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/rynok-dev/marketplace-backend/internal/cfg"
	v1Http "github.com/rynok-dev/marketplace-backend/internal/delivery/v1/http"
	"github.com/rynok-dev/marketplace-backend/internal/infrastructure/kafka"
	minioInfra "github.com/rynok-dev/marketplace-backend/internal/infrastructure/minio"
	s3Repo "github.com/rynok-dev/marketplace-backend/internal/repository/minio"
	"github.com/rynok-dev/marketplace-backend/internal/repository/pgdb"
	pgdbConv "github.com/rynok-dev/marketplace-backend/internal/repository/pgdb/converter/generated"
	"github.com/rynok-dev/marketplace-backend/internal/repository/redis"
	redisConv "github.com/rynok-dev/marketplace-backend/internal/repository/redis/converter/generated"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/clients"
	"github.com/rynok-dev/marketplace-backend/pkg/closer"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
	"github.com/rynok-dev/marketplace-backend/pkg/postgres"
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}

	// Ресурсы закрываются в порядке LIFO на этапе graceful shutdown.
	clsr := closer.NewCloser(2 * time.Second)
	clsr.Add(func(_ context.Context) error {
		db.Close()
		return nil
	})

	userConv := pgdbConv.NewUserConverterImpl()
	catConv := pgdbConv.NewCategoryConverterImpl()
	prConv := pgdbConv.NewProductConverterImpl()
	rtConv := pgdbConv.NewRatingConverterImpl()
	payConv := pgdbConv.NewPaymentConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	cardConv := redisConv.NewProductCardConverterImpl()

	userRepo := pgdb.NewUserRepo(db.Pool, userConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)
	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	ratingRepo := pgdb.NewRatingRepo(db.Pool, rtConv)
	methodRepo := pgdb.NewPaymentMethodRepo(db.Pool, payConv)
	requestRepo := pgdb.NewPaymentRequestRepo(db.Pool, payConv)
	paymentRepo := pgdb.NewPaymentRepo(db.Pool, payConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize minio client")
		os.Exit(1)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		logger.Errorf(err, "failed to initialize MinIO bucket")
		os.Exit(1)
	}
	minioCancel()

	fileRepo := s3Repo.NewFileRepo(minioClient, cfg.Minio)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	clsr.Add(func(_ context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, cardConv, cfg.Redis, logger)

	// Контекст фоновой очистки MinIO живет дольше HTTP-запросов
	// и закрывается на этапе graceful shutdown.
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	filesInfra := minioInfra.NewMinioInfrastructure(fileRepo, cfg.Minio, logger, cleanupCtx)

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		os.Exit(1)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		os.Exit(1)
	}
	clsr.Add(func(_ context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	outboxWorker.Start(workerCtx)

	catalogUC := usecase.NewCatalogUC(
		productRepo,
		categoryRepo,
		ratingRepo,
		userRepo,
		cacheRepo,
		filesInfra,
		db.Pool,
		logger,
		cfg.Catalog.PageSize,
	)
	ratingUC := usecase.NewRatingUC(ratingRepo, productRepo, logger)
	paymentUC := usecase.NewPaymentUC(
		requestRepo,
		paymentRepo,
		methodRepo,
		productRepo,
		userRepo,
		outboxRepo,
		filesInfra,
		db.Pool,
		logger,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(catalogUC, ratingUC, paymentUC, userRepo)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Errorf(err, "HTTP server shutdown error")
	} else {
		logger.Infof("HTTP server stopped")
	}

	// Воркер дорабатывает текущую пачку и останавливается.
	workerCancel()
	outboxWorker.Stop()
	logger.Infof("Outbox worker stopped")

	done := make(chan error, 1)
	go func() {
		done <- filesInfra.WaitForCleanup(shutdownCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Warnf("MinIO cleanup error: %v", err)
		} else {
			logger.Infof("MinIO cleanup completed")
		}
	case <-time.After(5 * time.Second): // локальный таймаут ожидания cleanup
		logger.Warnf("MinIO cleanup did not finish before shutdown, some temporary objects may remain")
	}

	if err := clsr.Close(shutdownCtx); err != nil {
		logger.Warnf("resource shutdown error: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
