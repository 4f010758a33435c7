package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Store         StoreConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"TECHDEPOT_APP_ENV" required:"true"`
	Port         string `envconfig:"TECHDEPOT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TECHDEPOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECHDEPOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TECHDEPOT_DB_DSN"`
	Driver string `envconfig:"TECHDEPOT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TECHDEPOT_DB_HOST"`
	LegacyPort     int    `envconfig:"TECHDEPOT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TECHDEPOT_DB_USER"`
	LegacyPassword string `envconfig:"TECHDEPOT_DB_PASSWORD"`
	LegacyName     string `envconfig:"TECHDEPOT_DB_NAME"`
	LegacySSLMode  string `envconfig:"TECHDEPOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TECHDEPOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TECHDEPOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TECHDEPOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TECHDEPOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TECHDEPOT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TECHDEPOT_REDIS_ADDR"`
	Password     string        `envconfig:"TECHDEPOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECHDEPOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECHDEPOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TECHDEPOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TECHDEPOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECHDEPOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECHDEPOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                string `envconfig:"TECHDEPOT_JWT_SECRET" required:"true"`
	Issuer                string `envconfig:"TECHDEPOT_JWT_ISSUER" required:"true"`
	ExpirationMinutes     int    `envconfig:"TECHDEPOT_JWT_EXPIRATION_MINUTES" default:"1440"`
	RefreshExpirationDays int    `envconfig:"TECHDEPOT_JWT_REFRESH_EXPIRATION_DAYS" default:"30"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh session lifetime.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshExpirationDays <= 0 {
		return 0
	}
	return time.Duration(j.RefreshExpirationDays) * 24 * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TECHDEPOT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TECHDEPOT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TECHDEPOT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TECHDEPOT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TECHDEPOT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TECHDEPOT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TECHDEPOT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TECHDEPOT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TECHDEPOT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TECHDEPOT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TECHDEPOT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// StoreConfig carries storefront policy knobs.
type StoreConfig struct {
	// PromoTiers lists the customer tiers eligible for promotional prices.
	PromoTiers []string `envconfig:"TECHDEPOT_PROMO_TIERS" default:"silver,gold,platinum"`
	// DefaultDeliveryStatus is the tag stamped on new orders.
	DefaultDeliveryStatus string `envconfig:"TECHDEPOT_DEFAULT_DELIVERY_STATUS" default:"not-delivered"`
	// CreditLines maps a customer tier to its store credit line, in cents.
	CreditLines map[string]int64 `envconfig:"TECHDEPOT_CREDIT_LINES" default:"silver:25000,gold:100000,platinum:500000"`
}

// CreditLineCents returns the credit line granted to the given tier, if any.
func (s StoreConfig) CreditLineCents(tier string) (int64, bool) {
	cents, ok := s.CreditLines[strings.ToLower(strings.TrimSpace(tier))]
	return cents, ok
}

// PromoEligible reports whether the given tier may use promotional prices.
func (s StoreConfig) PromoEligible(tier string) bool {
	tier = strings.ToLower(strings.TrimSpace(tier))
	for _, candidate := range s.PromoTiers {
		if strings.ToLower(strings.TrimSpace(candidate)) == tier {
			return true
		}
	}
	return false
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TECHDEPOT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TECHDEPOT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
