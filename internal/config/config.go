package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"80"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"10485760"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	TxIsolation     string        `yaml:"tx_isolation"       env:"DATABASE_TX_ISOLATION"       env-default:"repeatable read"`
	SkipMigrate     bool          `yaml:"skip_migrate"       env:"DATABASE_SKIP_MIGRATE"`
}

// CatalogConfig holds catalog engine settings.
type CatalogConfig struct {
	SalesWindow     time.Duration `yaml:"sales_window"      env:"CATALOG_SALES_WINDOW"      env-default:"24h"`
	MaxImportItems  int           `yaml:"max_import_items"  env:"CATALOG_MAX_IMPORT_ITEMS"  env-default:"10000"`
	RepriceOnDelete bool          `yaml:"reprice_on_delete" env:"CATALOG_REPRICE_ON_DELETE" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request rate limits.
//
// Boolean switches here and in MetricsConfig are negative: cleanenv applies
// env-default to every field still zero after the YAML read, so their default
// must be false.
type RateLimitConfig struct {
	Disabled          bool          `yaml:"disabled"            env:"RATE_LIMIT_DISABLED"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"          env-default:"1000"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"        env-default:"200"`
	IdleTTL           time.Duration `yaml:"idle_ttl"            env:"RATE_LIMIT_IDLE_TTL"     env-default:"10m"`
}

// MetricsConfig holds prometheus exposition settings.
type MetricsConfig struct {
	Disabled bool   `yaml:"disabled" env:"METRICS_DISABLED"`
	Path     string `yaml:"path"     env:"METRICS_PATH"     env-default:"/metrics"`
}
