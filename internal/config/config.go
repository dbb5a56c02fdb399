package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Insights  InsightsConfig  `yaml:"insights"`
	Redis     RedisConfig     `yaml:"redis"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
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
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"healthtrack"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"168h"`
	BcryptCost      int           `yaml:"bcrypt_cost"       env:"AUTH_BCRYPT_COST"       env-default:"10"`
	MinPasswordLen  int           `yaml:"min_password_len"  env:"AUTH_MIN_PASSWORD_LEN"  env-default:"8"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP rate limiting settings for /api routes.
type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	Limit   int           `yaml:"limit"   env:"RATE_LIMIT_LIMIT"   env-default:"120"`
	Window  time.Duration `yaml:"window"  env:"RATE_LIMIT_WINDOW"  env-default:"1m"`
}

// InsightsConfig holds the fetch caps and trend window bounds of the insights engine.
type InsightsConfig struct {
	VitalsLimit      int           `yaml:"vitals_limit"        env:"INSIGHTS_VITALS_LIMIT"        env-default:"500"`
	WorkoutsLimit    int           `yaml:"workouts_limit"      env:"INSIGHTS_WORKOUTS_LIMIT"      env-default:"500"`
	SleepLimit       int           `yaml:"sleep_limit"         env:"INSIGHTS_SLEEP_LIMIT"         env-default:"200"`
	MealsLimit       int           `yaml:"meals_limit"         env:"INSIGHTS_MEALS_LIMIT"         env-default:"500"`
	TrendDaysDefault int           `yaml:"trend_days_default"  env:"INSIGHTS_TREND_DAYS_DEFAULT"  env-default:"30"`
	TrendDaysMin     int           `yaml:"trend_days_min"      env:"INSIGHTS_TREND_DAYS_MIN"      env-default:"7"`
	TrendDaysMax     int           `yaml:"trend_days_max"      env:"INSIGHTS_TREND_DAYS_MAX"      env-default:"60"`
	CacheTTL         time.Duration `yaml:"cache_ttl"           env:"INSIGHTS_CACHE_TTL"           env-default:"5m"`
}

// RedisConfig holds the optional insights cache connection. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Prefix   string `yaml:"prefix"   env:"REDIS_PREFIX"   env-default:"healthtrack"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
