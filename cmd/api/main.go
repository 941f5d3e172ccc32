package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectoinject/ectocontainer"
	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Ramsey-B/cuvee/config"
	"github.com/Ramsey-B/cuvee/internal/clients/shopify"
	"github.com/Ramsey-B/cuvee/internal/repositories/catalogproduct"
	"github.com/Ramsey-B/cuvee/internal/repositories/matchresult"
	"github.com/Ramsey-B/cuvee/pkg/catalog"
	"github.com/Ramsey-B/cuvee/pkg/database"
	"github.com/Ramsey-B/cuvee/pkg/events"
	"github.com/Ramsey-B/cuvee/pkg/kafka"
	"github.com/Ramsey-B/cuvee/pkg/llm"
	"github.com/Ramsey-B/cuvee/pkg/logger"
	"github.com/Ramsey-B/cuvee/pkg/matching"
	"github.com/Ramsey-B/cuvee/pkg/middleware"
	"github.com/Ramsey-B/cuvee/pkg/processor"
	catalogroutes "github.com/Ramsey-B/cuvee/pkg/routes/catalog"
	compareroutes "github.com/Ramsey-B/cuvee/pkg/routes/compare"
	"github.com/Ramsey-B/cuvee/pkg/routes/health"
	matchresultroutes "github.com/Ramsey-B/cuvee/pkg/routes/matchresult"
	"github.com/Ramsey-B/cuvee/pkg/scoring"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppName, cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(&cfg, log); err != nil {
		log.WithError(err).Fatal("Service exited with error")
	}
}

func run(cfg *config.Config, log ectologger.Logger) error {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	tracing.SetTracer(tp.Tracer(cfg.AppName))

	db, err := connectDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := runMigrations(cfg, log, db); err != nil {
		return err
	}

	dbInstance := database.NewDatabaseInstance(db, log)

	// repositories
	catalogRepo := catalogproduct.NewRepository(dbInstance, log)
	resultRepo := matchresult.NewRepository(dbInstance, log)

	// collaborators
	shopifyClient := shopify.NewClient(shopify.Config{
		ShopHandle: cfg.ShopifyShopHandle,
		APIVersion: cfg.ShopifyAPIVersion,
		APIToken:   cfg.ShopifyAPIToken,
		PageSize:   cfg.ShopifyPageSize,
	}, log)

	catalogService := catalog.NewService(shopifyClient, catalogRepo, log)

	var scorer matching.Scorer = scoring.NewScorer()
	if cfg.ScorerBackend == "llm" {
		geminiClient := llm.NewClient(llm.Config{
			Endpoint: cfg.GeminiEndpoint,
			APIKey:   cfg.GeminiAPIKey,
			Model:    cfg.GeminiModel,
			Timeout:  cfg.GeminiRequestTimeout,
		}, log)
		scorer = llm.NewScorer(geminiClient, log)
		log.WithField("model", cfg.GeminiModel).Info("Using LLM scorer backend")
	}

	matchingService := matching.NewService(matching.Config{
		RetrievalLimit:  cfg.RetrievalLimit,
		TopCandidates:   cfg.TopCandidates,
		ReviewThreshold: cfg.ReviewThreshold,
	}, catalogService, scorer, log)

	batchProcessor := processor.NewProcessor(matchingService, cfg.CompareWorkerCount, log)

	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, log)
		defer producer.Close() //nolint:errcheck
	}
	emitter := events.NewEmitter(producer, log)

	// handlers resolve their dependencies from the default container
	if _, err := buildContainer(catalogRepo, resultRepo, catalogService, matchingService, batchProcessor, emitter); err != nil {
		return fmt.Errorf("build DI container: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(log)
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(log))

	checker := health.NewChecker(dbInstance, version)
	checker.RegisterRoutes(e)

	api := e.Group("/api/v1")
	compareroutes.Register(api.Group("/compare"))
	catalogroutes.Register(api.Group("/catalog"))
	matchresultroutes.Register(api.Group("/matches"))

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.ReadHeaderTimeout = time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		checker.SetReady(true)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	log.WithField("port", cfg.Port).Infof("%s listening on port %d", cfg.AppName, cfg.Port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	checker.SetReady(false)
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func connectDatabase(cfg *config.Config, log ectologger.Logger) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName, cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)

	attempts := cfg.StartupMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var db *sqlx.DB
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = sqlx.Connect(cfg.DatabaseDriver, dsn)
		if err == nil {
			break
		}
		log.WithError(err).WithField("attempt", attempt).Warn("Database not ready, retrying")
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	db.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	log.WithField("database", cfg.DatabaseName).Info("Connected to database")
	return db, nil
}

func runMigrations(cfg *config.Config, log ectologger.Logger, db *sqlx.DB) error {
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrationService := database.NewMigrationService(log, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})

	return migrationService.Migrate(cfg.DatabaseName, driver)
}

func buildContainer(
	catalogRepo *catalogproduct.Repository,
	resultRepo *matchresult.Repository,
	catalogService *catalog.Service,
	matchingService *matching.Service,
	batchProcessor *processor.Processor,
	emitter *events.Emitter,
) (ectocontainer.DIContainer, error) {
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return nil, err
	}

	if err := ectoinject.RegisterInstance[*catalogproduct.Repository](container, catalogRepo); err != nil {
		return nil, err
	}
	if err := ectoinject.RegisterInstance[*matchresult.Repository](container, resultRepo); err != nil {
		return nil, err
	}
	if err := ectoinject.RegisterInstance[*catalog.Service](container, catalogService); err != nil {
		return nil, err
	}
	if err := ectoinject.RegisterInstance[*matching.Service](container, matchingService); err != nil {
		return nil, err
	}
	if err := ectoinject.RegisterInstance[*processor.Processor](container, batchProcessor); err != nil {
		return nil, err
	}
	if err := ectoinject.RegisterInstance[*events.Emitter](container, emitter); err != nil {
		return nil, err
	}

	return container, nil
}
