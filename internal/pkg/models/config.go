package models

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Data      DataConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	NATS      NATSConfig
	Internal  InternalConfig
	RateLimit RateLimitConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DataConfig describes where pickups are loaded from and how they are binned
type DataConfig struct {
	Source           string // csv or postgres
	URL              string // file path or http(s) URL for csv
	NRows            int    // 0 loads every row
	HTTPTimeout      int    // in seconds, per download attempt
	ReloadTimeout    int    // in seconds, whole reload including retries
	GeohashPrecision uint
	ViewsFile        string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// CacheConfig controls snapshot memoization
type CacheConfig struct {
	TTL int // in seconds
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// InternalConfig holds settings for internal (operator) endpoints
type InternalConfig struct {
	APIKey string
}

// RateLimitConfig limits chart rendering per client IP. Requires Redis.
type RateLimitConfig struct {
	ChartsPerMinute int // 0 disables the limiter
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
