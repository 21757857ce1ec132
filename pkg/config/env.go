package config

const EnvPrefix = "ORDERDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv     = "ORDERDESK_APP_ENV"
	EnvPort       = "ORDERDESK_APP_PORT"
	EnvLogLevel   = "ORDERDESK_LOG_LEVEL"
	EnvCORSOrigin = "ORDERDESK_CORS_ORIGINS"

	EnvDBDSN      = "ORDERDESK_DB_DSN"
	EnvDBDriver   = "ORDERDESK_DB_DRIVER"
	EnvDBHost     = "ORDERDESK_DB_HOST"
	EnvDBPort     = "ORDERDESK_DB_PORT"
	EnvDBUser     = "ORDERDESK_DB_USER"
	EnvDBPassword = "ORDERDESK_DB_PASSWORD"
	EnvDBName     = "ORDERDESK_DB_NAME"

	EnvRedisURL  = "ORDERDESK_REDIS_URL"
	EnvRedisAddr = "ORDERDESK_REDIS_ADDR"

	EnvJWTSecret  = "ORDERDESK_JWT_SECRET"
	EnvJWTIssuer  = "ORDERDESK_JWT_ISSUER"
	EnvJWTExpMins = "ORDERDESK_JWT_EXPIRATION_MINUTES"

	EnvAutoMigrate = "ORDERDESK_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
