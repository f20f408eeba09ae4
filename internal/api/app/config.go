package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	// JWTSecret signs every access token. Startup fails without it; there
	// is no generated fallback because a restart would silently invalidate
	// every outstanding token.
	JWTSecret      string        `env:"JWT_SECRET,required"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"hydrous-api"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	DatabaseFile string `env:"DATABASE_FILE" envDefault:"hydrous.db"`
	PepperFile   string `env:"PEPPER_FILE" envDefault:"pepper"`

	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisTimeout time.Duration `env:"REDIS_TIMEOUT" envDefault:"5s"`

	// IgnoreRedisErrors swaps in an in-process revocation store when Redis
	// is unreachable at startup. Logout stops surviving restarts; only
	// meant for local development.
	IgnoreRedisErrors bool `env:"IGNORE_REDIS_ERRORS" envDefault:"false"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
