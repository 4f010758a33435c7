package config

// EnvPrefix scopes every environment variable this service reads.
const EnvPrefix = "TECHDEPOT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error text).
const (
	EnvAppEnv     = "TECHDEPOT_APP_ENV"
	EnvPort       = "TECHDEPOT_APP_PORT"
	EnvDBDSN      = "TECHDEPOT_DB_DSN"
	EnvDBHost     = "TECHDEPOT_DB_HOST"
	EnvDBUser     = "TECHDEPOT_DB_USER"
	EnvDBName     = "TECHDEPOT_DB_NAME"
	EnvRedisURL   = "TECHDEPOT_REDIS_URL"
	EnvJWTSecret  = "TECHDEPOT_JWT_SECRET"
	EnvJWTIssuer  = "TECHDEPOT_JWT_ISSUER"
	EnvJWTExpMins = "TECHDEPOT_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
