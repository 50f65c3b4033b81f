package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"storefront/cmd"
	storefronthttp "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/events"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/redisstore"
	"storefront/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConfig := postgres.Config{
		Host:            configs.DBHost,
		Port:            configs.DBPort,
		User:            configs.DBUser,
		Password:        configs.DBPassword,
		DBName:          configs.DBName,
		SSLMode:         configs.DBSslMode,
		MaxOpenConns:    configs.DBMaxOpenConns,
		MaxIdleConns:    configs.DBMaxIdleConns,
		ConnMaxLifetime: configs.DBConnMaxLife,
		ConnMaxIdleTime: configs.DBConnMaxIdle,
	}
	gormDB, err := postgres.Open(ctx, dbConfig.DSN(), dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	if configs.DBAutoMigrate {
		if err = postgres.Migrate(gormDB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	redisClient, err := redisstore.NewClient(ctx, redisstore.Config{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var publisher *events.Publisher
	if len(configs.KafkaBrokers) > 0 {
		publisher = events.NewPublisher(events.NewWriter(events.Config{
			Brokers: configs.KafkaBrokers,
			Topic:   configs.KafkaOrderTopic,
		}))
		defer publisher.Close()
	} else {
		logger.Warn("No kafka brokers configured, order events are not published")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, publisher, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, jobManager, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, jobManager *jobs.JobManager, logger *slog.Logger) {
	e := storefronthttp.NewEcho(app.CreateHTTPServer())

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			jobManager.StopAll()
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:            envString("HTTP_PORT", "8080"),
		DBHost:              envString("DB_HOST", "localhost"),
		DBPort:              envString("DB_PORT", "5432"),
		DBUser:              envString("DB_USER", ""),
		DBPassword:          envString("DB_PASSWORD", ""),
		DBName:              envString("DB_NAME", ""),
		DBSslMode:           envString("DB_SSLMODE", "disable"),
		DBMaxOpenConns:      envInt("DB_MAX_OPEN_CONNS", postgres.DefaultMaxOpenConns),
		DBMaxIdleConns:      envInt("DB_MAX_IDLE_CONNS", postgres.DefaultMaxIdleConns),
		DBConnMaxLife:       envDuration("DB_CONN_MAX_LIFETIME", postgres.DefaultConnMaxLifetime),
		DBConnMaxIdle:       envDuration("DB_CONN_MAX_IDLE_TIME", postgres.DefaultConnMaxIdleTime),
		DBAutoMigrate:       envBool("DB_AUTO_MIGRATE", true),
		RedisAddr:           envString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       envString("REDIS_PASSWORD", ""),
		RedisDB:             envInt("REDIS_DB", 0),
		SessionTTL:          envDuration("CHECKOUT_SESSION_TTL", redisstore.DefaultSessionTTL),
		StoreCacheTTL:       envDuration("STORE_CACHE_TTL", redisstore.DefaultStoreCacheTTL),
		KafkaBrokers:        envList("KAFKA_BROKERS"),
		KafkaOrderTopic:     envString("KAFKA_ORDER_TOPIC", events.DefaultTopic),
		GeoServiceURL:       envString("GEO_SERVICE_URL", ""),
		GeoTimeout:          envDuration("GEO_SERVICE_TIMEOUT", 5*time.Second),
		GeoFailureThreshold: uint32(envInt("GEO_SERVICE_FAILURE_THRESHOLD", 5)),
		GeoOpenTimeout:      envDuration("GEO_SERVICE_OPEN_TIMEOUT", 30*time.Second),
		WhatsAppBaseURL:     envString("WHATSAPP_BASE_URL", ""),
		PhoneDigits:         envInt("PHONE_DIGITS", 0),
		RetrySchedule:       envString("UNSAVED_ORDERS_RETRY_SCHEDULE", jobs.DefaultRetrySchedule),
		RetryBatchSize:      envInt("UNSAVED_ORDERS_RETRY_BATCH", 0),
	}
	return config
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	raw := envString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Fatalf("Invalid %s: %q", key, raw)
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := envString(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %q", key, raw)
	}
	return v
}

func envBool(key string, def bool) bool {
	raw := envString(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %q", key, raw)
	}
	return v
}

func envList(key string) []string {
	var items []string
	for _, item := range strings.Split(envString(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
