package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is intentionally empty; every field carries its full variable name.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Business     BusinessConfig
	Availability AvailabilityConfig
	Cart         CartConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAFE_APP_ENV" required:"true"`
	Port         string `envconfig:"CAFE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CAFE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAFE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CAFE_DB_DSN"`
	Driver string `envconfig:"CAFE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CAFE_DB_HOST"`
	LegacyPort     int    `envconfig:"CAFE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CAFE_DB_USER"`
	LegacyPassword string `envconfig:"CAFE_DB_PASSWORD"`
	LegacyName     string `envconfig:"CAFE_DB_NAME"`
	LegacySSLMode  string `envconfig:"CAFE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CAFE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"CAFE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CAFE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAFE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if strings.EqualFold(d.Driver, "sqlite") {
		return fmt.Errorf("CAFE_DB_DSN is required for the sqlite driver")
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either CAFE_DB_DSN or CAFE_DB_HOST/CAFE_DB_USER/CAFE_DB_NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.LegacyHost, d.LegacyPort, d.LegacyUser, d.LegacyPassword, d.LegacyName, d.LegacySSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"CAFE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CAFE_REDIS_ADDR"`
	Password     string        `envconfig:"CAFE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAFE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAFE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAFE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAFE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAFE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAFE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CAFE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CAFE_JWT_ISSUER" default:"cafe-storefront"`
	ExpirationMinutes int    `envconfig:"CAFE_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CAFE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CAFE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CAFE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CAFE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CAFE_ARGON_KEY_LEN" default:"32"`
}

// BusinessConfig carries the café identity embedded into outbound
// order messages and payment links.
type BusinessConfig struct {
	Name     string `envconfig:"CAFE_BUSINESS_NAME" default:"Cafe V2"`
	WhatsApp string `envconfig:"CAFE_BUSINESS_WHATSAPP" default:"9111676448"`
	UPIID    string `envconfig:"CAFE_BUSINESS_UPI_ID" default:"9111676448@ybl"`
	Address  string `envconfig:"CAFE_BUSINESS_ADDRESS" default:"123 Foodie Street, City Center"`
	Tagline  string `envconfig:"CAFE_BUSINESS_TAGLINE" default:"Experience the Taste of Innovation"`
}

type AvailabilityConfig struct {
	RecheckInterval  time.Duration `envconfig:"CAFE_AVAILABILITY_RECHECK_INTERVAL" default:"15s"`
	DefaultOpenTime  string        `envconfig:"CAFE_AVAILABILITY_DEFAULT_OPEN" default:"10:00"`
	DefaultCloseTime string        `envconfig:"CAFE_AVAILABILITY_DEFAULT_CLOSE" default:"22:00"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"CAFE_CART_TTL" default:"168h"`
}

type CORSConfig struct {
	ExtraOrigins []string `envconfig:"CAFE_CORS_EXTRA_ORIGINS"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CAFE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CAFE_AUTO_MIGRATE" default:"false"`
}
