package cmd

import "time"

type Config struct {
	HTTPPort string

	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxLife   time.Duration
	DBConnMaxIdle   time.Duration
	DBAutoMigrate   bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SessionTTL      time.Duration
	StoreCacheTTL   time.Duration
	KafkaBrokers    []string
	KafkaOrderTopic string

	// GeoServiceURL is the geo service base URL. Empty means distances are
	// measured locally and zone delivery is unavailable.
	GeoServiceURL       string
	GeoTimeout          time.Duration
	GeoFailureThreshold uint32
	GeoOpenTimeout      time.Duration

	WhatsAppBaseURL string
	PhoneDigits     int

	RetrySchedule  string
	RetryBatchSize int
}
