package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the backend.
const EnvPrefix = "MESSMATE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	House         HouseConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MESSMATE_APP_ENV" required:"true"`
	Port         string `envconfig:"MESSMATE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MESSMATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MESSMATE_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"MESSMATE_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MESSMATE_DB_DSN"`
	Driver string `envconfig:"MESSMATE_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"MESSMATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MESSMATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MESSMATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MESSMATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) validate() error {
	switch d.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver %q", d.Driver)
	}
	if d.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MESSMATE_REDIS_URL"`
	Address      string        `envconfig:"MESSMATE_REDIS_ADDR"`
	Password     string        `envconfig:"MESSMATE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MESSMATE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MESSMATE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MESSMATE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MESSMATE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MESSMATE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MESSMATE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MESSMATE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MESSMATE_JWT_ISSUER" default:"messmate"`
	ExpirationMinutes      int    `envconfig:"MESSMATE_JWT_EXPIRATION_MINUTES" default:"10080"`
	RefreshTokenTTLMinutes int    `envconfig:"MESSMATE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MESSMATE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MESSMATE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MESSMATE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MESSMATE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MESSMATE_ARGON_KEY_LEN" default:"32"`
	MinLength        int `envconfig:"MESSMATE_PASSWORD_MIN_LENGTH" default:"6"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MESSMATE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MESSMATE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MESSMATE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MESSMATE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MESSMATE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MESSMATE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// HouseConfig tunes house join-code generation and ledger bounds.
type HouseConfig struct {
	CodeLength      int `envconfig:"MESSMATE_HOUSE_CODE_LENGTH" default:"8"`
	CodeMaxAttempts int `envconfig:"MESSMATE_HOUSE_CODE_MAX_ATTEMPTS" default:"25"`
	TempPasswordLen int `envconfig:"MESSMATE_TEMP_PASSWORD_LENGTH" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MESSMATE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MESSMATE_AUTO_MIGRATE" default:"false"`
}
