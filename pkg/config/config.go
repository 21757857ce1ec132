package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env               string        `envconfig:"ORDERDESK_APP_ENV" required:"true"`
	Port              string        `envconfig:"ORDERDESK_APP_PORT" default:"8080"`
	LogLevel          string        `envconfig:"ORDERDESK_LOG_LEVEL" default:"info"`
	LogWarnStack      bool          `envconfig:"ORDERDESK_LOG_WARN_STACK" default:"false"`
	CORSOrigins       []string      `envconfig:"ORDERDESK_CORS_ORIGINS" default:"http://localhost:3000"`
	ReadHeaderTimeout time.Duration `envconfig:"ORDERDESK_READ_HEADER_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"ORDERDESK_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "development")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN    string `envconfig:"ORDERDESK_DB_DSN"`
	Driver string `envconfig:"ORDERDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ORDERDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"ORDERDESK_DB_PORT"`
	LegacyUser     string `envconfig:"ORDERDESK_DB_USER"`
	LegacyPassword string `envconfig:"ORDERDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"ORDERDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"ORDERDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ORDERDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORDERDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORDERDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDERDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERDESK_REDIS_URL"`
	Address      string        `envconfig:"ORDERDESK_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERDESK_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"ORDERDESK_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ORDERDESK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ORDERDESK_JWT_ISSUER" default:"orderdesk"`
	ExpirationMinutes int    `envconfig:"ORDERDESK_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TokenTTL returns the lifetime of an access token and its session.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ORDERDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ORDERDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ORDERDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ORDERDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ORDERDESK_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ORDERDESK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) normalize() error {
	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	if driver == "" {
		driver = DriverPostgres
	}
	switch driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported %s %q (supported: %s, %s, %s)", EnvDBDriver, db.Driver, DriverPostgres, DriverMySQL, DriverSQLite)
	}
	db.Driver = driver

	if db.DSN != "" {
		return nil
	}
	if driver == DriverSQLite {
		db.DSN = "orderdesk.db"
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

	if driver == DriverMySQL {
		db.DSN = db.mysqlDSN()
		return nil
	}
	db.DSN = db.postgresDSN()
	return nil
}

func (db *DBConfig) postgresDSN() string {
	port := db.LegacyPort
	if port == 0 {
		port = 5432
	}
	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, port),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (db *DBConfig) mysqlDSN() string {
	port := db.LegacyPort
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		db.LegacyUser, db.LegacyPassword, db.LegacyHost, port, db.LegacyName)
}
