package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type RESTConfig struct {
	Port string
}

type PostgresConfig struct {
	URL string
}

type GovAPIConfig struct {
	BaseURL    string
	ServiceKey string

	Timeout            time.Duration
	MaxRetries         int
	RetryBackoff       time.Duration
	MinRequestInterval time.Duration
	PageSize           int
}

type SyncConfig struct {
	BatchSize     int
	ChunkSize     int
	ChunkDelay    time.Duration
	StaleAfter    time.Duration
	DefaultMonths int
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	Postgres     PostgresConfig
	GovAPI       GovAPIConfig
	Sync         SyncConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig reads the configuration from environment variables, optionally
// seeded by a .env file. The service key and the database URL have no
// defaults: the credential never lives in code and a sync service without a
// database is useless.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "apt-sync-service")
	cfg.Rest.Port = getEnvAsString("PORT", "8088")

	cfg.Postgres.URL = os.Getenv("DATABASE_URL")
	if cfg.Postgres.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.GovAPI.ServiceKey = os.Getenv("GOV_API_SERVICE_KEY")
	if cfg.GovAPI.ServiceKey == "" {
		return nil, fmt.Errorf("GOV_API_SERVICE_KEY environment variable is required")
	}
	cfg.GovAPI.BaseURL = getEnvAsString("GOV_API_BASE_URL", "https://apis.data.go.kr")
	cfg.GovAPI.Timeout = getEnvAsDuration("GOV_API_TIMEOUT", 15*time.Second)
	cfg.GovAPI.MaxRetries = getEnvAsInt("GOV_API_MAX_RETRIES", 3)
	cfg.GovAPI.RetryBackoff = getEnvAsDuration("GOV_API_RETRY_BACKOFF", 500*time.Millisecond)
	cfg.GovAPI.MinRequestInterval = getEnvAsDuration("GOV_API_MIN_REQUEST_INTERVAL", 200*time.Millisecond)
	cfg.GovAPI.PageSize = getEnvAsInt("GOV_API_PAGE_SIZE", 1000)

	cfg.Sync.BatchSize = getEnvAsInt("SYNC_BATCH_SIZE", 50)
	cfg.Sync.ChunkSize = getEnvAsInt("SYNC_CHUNK_SIZE", 5)
	cfg.Sync.ChunkDelay = getEnvAsDuration("SYNC_CHUNK_DELAY", 300*time.Millisecond)
	cfg.Sync.StaleAfter = getEnvAsDuration("SYNC_STALE_AFTER", 30*24*time.Hour)
	cfg.Sync.DefaultMonths = getEnvAsInt("SYNC_DEFAULT_MONTHS", 3)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as int, falling back to the
// default (and logging) when it cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDur, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDur
}
