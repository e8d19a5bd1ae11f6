package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/piresc/pickups/internal/pkg/models"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" && configPath != "" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "pickups-service")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 8080)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 30)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 30)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Data config
	configs.Data.Source = GetEnv("DATA_SOURCE", DataSourceCSV)
	configs.Data.URL = GetEnv("DATA_URL", "uber-raw-data-sep14.csv.gz")
	configs.Data.NRows = GetEnvAsInt("DATA_NROWS", 100000)
	configs.Data.HTTPTimeout = GetEnvAsInt("DATA_HTTP_TIMEOUT", 60)
	configs.Data.ReloadTimeout = GetEnvAsInt("DATA_RELOAD_TIMEOUT", 300)
	configs.Data.GeohashPrecision = uint(GetEnvAsInt("GEOHASH_PRECISION", 7))
	configs.Data.ViewsFile = GetEnv("VIEWS_FILE", "")

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// Cache config
	configs.Cache.TTL = GetEnvAsInt("CACHE_TTL", 3600)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// Internal endpoints
	configs.Internal.APIKey = GetEnv("INTERNAL_API_KEY", "")

	// Chart rate limiting
	configs.RateLimit.ChartsPerMinute = GetEnvAsInt("CHART_RATE_LIMIT", 120)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Data sources understood by the pickups service
const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
)

// Validate rejects settings the service cannot start with
func Validate(configs *models.Config) error {
	var errs []error

	switch configs.Data.Source {
	case DataSourceCSV:
		if configs.Data.URL == "" {
			errs = append(errs, errors.New("DATA_URL is required for the csv source"))
		}
	case DataSourcePostgres:
		if configs.Database.Host == "" || configs.Database.Database == "" {
			errs = append(errs, errors.New("DB_HOST and DB_DATABASE are required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATA_SOURCE %q", configs.Data.Source))
	}

	// a reload must outlast one download attempt or retries never run
	if configs.Data.ReloadTimeout <= configs.Data.HTTPTimeout {
		errs = append(errs, fmt.Errorf("DATA_RELOAD_TIMEOUT (%ds) must exceed DATA_HTTP_TIMEOUT (%ds)",
			configs.Data.ReloadTimeout, configs.Data.HTTPTimeout))
	}
	if configs.Data.NRows < 0 {
		errs = append(errs, errors.New("DATA_NROWS must not be negative"))
	}
	// geohash strings are at most 12 characters
	if configs.Data.GeohashPrecision < 1 || configs.Data.GeohashPrecision > 12 {
		errs = append(errs, fmt.Errorf("GEOHASH_PRECISION must be between 1 and 12, got %d", configs.Data.GeohashPrecision))
	}
	if configs.Server.Port <= 0 || configs.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT %d is out of range", configs.Server.Port))
	}

	return errors.Join(errs...)
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
