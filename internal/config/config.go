package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Editor    EditorConfig    `yaml:"editor"`
	Templates TemplatesConfig `yaml:"templates"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Client-ID"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is required only when the postgres storage driver is selected.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverDisk     = "disk"
)

// StorageConfig selects where documents are persisted.
type StorageConfig struct {
	Driver         string `yaml:"driver"           env:"STORAGE_DRIVER"           env-default:"postgres"`
	DiskPath       string `yaml:"disk_path"        env:"STORAGE_DISK_PATH"        env-default:"./data/documents"`
	DiskCacheBytes uint64 `yaml:"disk_cache_bytes" env:"STORAGE_DISK_CACHE_BYTES" env-default:"16777216"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"queue"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
}

// EditorConfig holds editing session parameters.
type EditorConfig struct {
	MaxQueueIndex      int  `yaml:"max_queue_index"      env:"EDITOR_MAX_QUEUE_INDEX"      env-default:"50"`
	HistoryLimit       int  `yaml:"history_limit"        env:"EDITOR_HISTORY_LIMIT"        env-default:"100"`
	AllowEmptyDocument bool `yaml:"allow_empty_document" env:"EDITOR_ALLOW_EMPTY_DOCUMENT" env-default:"false"`
	DefaultWidth       int  `yaml:"default_width"        env:"EDITOR_DEFAULT_WIDTH"        env-default:"1920"`
	DefaultHeight      int  `yaml:"default_height"       env:"EDITOR_DEFAULT_HEIGHT"       env-default:"1080"`
}

// TemplatesConfig holds the template catalogue and fetch limits.
type TemplatesConfig struct {
	CatalogRaw   string        `yaml:"catalog"       env:"TEMPLATES_CATALOG"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"TEMPLATES_FETCH_TIMEOUT" env-default:"10s"`
	MaxBytes     int64         `yaml:"max_bytes"     env:"TEMPLATES_MAX_BYTES"     env-default:"5242880"`

	// Catalog is parsed from CatalogRaw during validation.
	Catalog []TemplateSource `yaml:"-" env:"-"`
}

// TemplateSource is a named template location (http(s) URL or file path).
type TemplateSource struct {
	Name     string
	Location string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM" env-default:"600"`
}

// AllowsOrigin reports whether origin is in the allowed list or the list
// contains "*".
func (c CORSConfig) AllowsOrigin(origin string) bool {
	for _, a := range strings.Split(c.AllowedOrigins, ",") {
		if a = strings.TrimSpace(a); a == "*" || a == origin {
			return true
		}
	}
	return false
}

// Template returns the catalogue entry with the given name.
func (c TemplatesConfig) Template(name string) (TemplateSource, bool) {
	for _, t := range c.Catalog {
		if t.Name == name {
			return t, true
		}
	}
	return TemplateSource{}, false
}
