package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/wizardhub.net/internal/adapter/crypto"
	"gitlab.com/wizardhub.net/internal/adapter/logging"
	"gitlab.com/wizardhub.net/internal/adapter/memory"
	"gitlab.com/wizardhub.net/internal/adapter/oauth"
	"gitlab.com/wizardhub.net/internal/adapter/postgres/jobrepository"
	"gitlab.com/wizardhub.net/internal/adapter/postgres/userrepository"
	"gitlab.com/wizardhub.net/internal/adapter/rabbitmq"
	"gitlab.com/wizardhub.net/internal/adapter/redis/leaderboardport"
	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/consumers/jobstats"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	"gitlab.com/wizardhub.net/internal/core/ports/secondary"
	auth2 "gitlab.com/wizardhub.net/internal/core/services/auth"
	"gitlab.com/wizardhub.net/internal/core/services/directory"
	"gitlab.com/wizardhub.net/internal/core/services/discovery"
	"gitlab.com/wizardhub.net/internal/core/services/job"
	logger2 "gitlab.com/wizardhub.net/internal/global/logger"
	handlerauth "gitlab.com/wizardhub.net/internal/handlers/auth"
	http2 "gitlab.com/wizardhub.net/internal/http"
	"gitlab.com/wizardhub.net/internal/schedulerengine"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.LoadFile(path, sysCfg); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if err := sysCfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger2.Configure(logging.New(sysCfg.LogConfig.Format, sysCfg.LogConfig.Level, os.Stderr))
	logger := logger2.Logger
	logger.Info("Starting wizardhub service", "storeDriver", sysCfg.StoreDriver, "debug", sysCfg.DebugMode)

	ctxBg, cancelBg := context.WithCancel(context.Background())
	defer cancelBg()

	// SECONDARY PORTS
	userStore, jobStore, closeStore, err := setupStores(sysCfg, logger)
	if err != nil {
		logger.Error("Failed to set up store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	var leaderboardCache secondary.LeaderboardCache
	if sysCfg.RedisConfig.Enabled {
		redisClient := setupRedis(sysCfg.RedisConfig)
		defer redisClient.Close()
		if err := redisClient.Ping(ctxBg).Err(); err != nil {
			logger.Warn("Redis unreachable, leaderboards are served from the store", "error", err)
		}
		leaderboardCache = leaderboardport.NewLeaderboardRepository(redisClient, logger)
	}

	var (
		publisher secondary.JobEventPublisher
		rabbit    *rabbitmq.Client
	)
	if sysCfg.RabbitMQConfig.Enabled {
		rabbit, err = rabbitmq.NewClient(sysCfg.RabbitMQConfig, logger)
		if err != nil {
			logger.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer rabbit.Close()
		publisher = rabbit
	}

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	directorySvc := directory.NewDirectoryService(userStore, jwtProvider, logger)
	discoverySvc := discovery.NewDiscoveryService(userStore, leaderboardCache, sysCfg.DiscoveryConfig, logger)
	jobSvc := job.NewJobService(jobStore, directorySvc, publisher, logger)
	localAuth := auth2.NewLocalAuthService(userStore, jwtProvider, jwtProvider, logger)

	var (
		ggAuth         auth2.IAuthService
		googleProvider handlerauth.IdentityProvider
	)
	if sysCfg.GGAuthConfig.Enabled() {
		ggAuth = auth2.NewGoogleAuthService(directorySvc, jwtProvider, logger)
		googleProvider = oauth.NewGoogleClient(sysCfg.GGAuthConfig)
	}

	if rabbit != nil {
		deliveries, err := rabbit.Consume(sysCfg.HttpConfig.ServiceName + "-jobstats")
		if err != nil {
			logger.Error("Failed to start job stats consumer", "error", err)
			os.Exit(1)
		}
		go jobstats.NewConsumer(directorySvc, logger).Run(ctxBg, deliveries)
	}

	//server
	serviceProvider := http2.NewServiceProvider(directorySvc, discoverySvc, jobSvc, jwtProvider, localAuth, ggAuth, googleProvider)
	httpServer := http2.NewServer(sysCfg.HttpConfig, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	if err := httpServer.Start(ctxBg); err != nil {
		logger.Error("Failed to start http server", "error", err)
		os.Exit(1)
	}

	schedulerSvc := schedulerengine.NewSchedulerEngine(sysCfg.DiscoveryConfig, discoverySvc, logger)
	if leaderboardCache != nil && !sysCfg.DebugMode {
		schedulerSvc.StartLeaderboardRefresh(ctxBg)
	}

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)
	cancelBg()
	schedulerSvc.Wait()

	logger.Info("successfully shutdown server")
}

// setupStores picks the store adapters for the configured driver
func setupStores(cfg *config.AppConfig, logger primary.Logger) (secondary.UserStore, secondary.JobStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using the in-memory store, data is lost on exit")
		db := memory.NewDB()
		return db.Users(), db.Jobs(), func() {}, nil
	}

	db, err := setupDatabase(cfg.PostgresConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	schema := cfg.PostgresConfig.Schema
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}
	return userrepository.New(db, logger, schema), jobrepository.NewJobRepository(db, logger, schema), closeDB, nil
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// InitReader loads <env>.env when an environment name is passed as the first argument
func InitReader() {
	if len(os.Args) < 2 {
		return
	}
	environment := os.Args[1]

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
