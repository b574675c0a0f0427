package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	TokenSchemeHMAC   = "hmac"
	TokenSchemeLegacy = "legacy"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-required:"true"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-required:"true"`
	Password       string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Database       string        `env:"POSTGRES_DATABASE" env-required:"true"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED" env-default:"false"`
	Addr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	CacheTTL time.Duration `env:"REDIS_CACHE_TTL" env-default:"5m"`
}

type AuthConfig struct {
	// Required toggles the bearer-token check on mutating task routes.
	Required bool `env:"AUTH_REQUIRED" env-default:"true"`
	// TokenScheme picks the token codec: "hmac" for signed JWTs,
	// "legacy" for the unsigned base64 blobs older clients expect.
	TokenScheme     string        `env:"AUTH_TOKEN_SCHEME" env-default:"hmac"`
	Issuer          string        `env:"AUTH_ISSUER" env-default:"go-task-api"`
	SigningKey      string        `env:"AUTH_SIGNING_KEY" env-default:""`
	AccessTokenTTL  time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
	RefreshTokenTTL time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" env-default:"168h"`
}
