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
	Auth         AuthConfig
	WhatsApp     WhatsAppConfig
	Checkout     CheckoutConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
	Demo         DemoConfig
	Maintenance  MaintenanceConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env            string   `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port           string   `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel       string   `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack   bool     `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	DSN        string `envconfig:"STOREFRONT_DB_DSN"`
	Driver     string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"STOREFRONT_SQLITE_PATH" default:"storefront.db"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"STOREFRONT_DB_SLOW_QUERY" default:"500ms"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig describes the external auth provider whose access tokens are accepted.
type AuthConfig struct {
	Secret   string `envconfig:"STOREFRONT_AUTH_JWT_SECRET" required:"true"`
	Issuer   string `envconfig:"STOREFRONT_AUTH_JWT_ISSUER"`
	Audience string `envconfig:"STOREFRONT_AUTH_JWT_AUDIENCE" default:"authenticated"`
}

type WhatsAppConfig struct {
	PhoneNumberID string        `envconfig:"STOREFRONT_WHATSAPP_PHONE_NUMBER_ID"`
	AccessToken   string        `envconfig:"STOREFRONT_WHATSAPP_ACCESS_TOKEN"`
	BaseURL       string        `envconfig:"STOREFRONT_WHATSAPP_BASE_URL" default:"https://graph.facebook.com/v21.0"`
	Timeout       time.Duration `envconfig:"STOREFRONT_WHATSAPP_TIMEOUT" default:"10s"`
}

// Enabled reports whether outbound WhatsApp messages can be sent.
func (w WhatsAppConfig) Enabled() bool {
	return strings.TrimSpace(w.PhoneNumberID) != "" && strings.TrimSpace(w.AccessToken) != ""
}

type CheckoutConfig struct {
	// OrderAPIURL points cart clients at a remote order backend; empty means in-process.
	OrderAPIURL  string        `envconfig:"STOREFRONT_CHECKOUT_ORDER_API_URL"`
	InFlightTTL  time.Duration `envconfig:"STOREFRONT_CHECKOUT_IN_FLIGHT_TTL" default:"30s"`
	OrderTimeout time.Duration `envconfig:"STOREFRONT_CHECKOUT_ORDER_TIMEOUT" default:"15s"`

	RateLimitWindow       time.Duration `envconfig:"STOREFRONT_CHECKOUT_RATE_LIMIT_WINDOW" default:"10m"`
	RateLimitIPLimit      int           `envconfig:"STOREFRONT_CHECKOUT_RATE_LIMIT_IP" default:"30"`
	RateLimitContactLimit int           `envconfig:"STOREFRONT_CHECKOUT_RATE_LIMIT_CONTACT" default:"10"`
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"STOREFRONT_CART_SESSION_TTL" default:"720h"`
	StorageKey string        `envconfig:"STOREFRONT_CART_STORAGE_KEY" default:"ecom-cart-storage"`
	LockTTL    time.Duration `envconfig:"STOREFRONT_CART_LOCK_TTL" default:"5s"`
	LockWait   time.Duration `envconfig:"STOREFRONT_CART_LOCK_WAIT" default:"2s"`
}

type FeatureFlagsConfig struct {
	UseSQLite    bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
	AutoMigrate  bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
	SeedDemoData bool `envconfig:"STOREFRONT_SEED_DEMO_DATA" default:"true"`
}

type DemoConfig struct {
	ProductTTL time.Duration `envconfig:"STOREFRONT_DEMO_PRODUCT_TTL" default:"168h"`
}

type MaintenanceConfig struct {
	Interval       time.Duration `envconfig:"STOREFRONT_MAINTENANCE_INTERVAL" default:"1h"`
	LockTTL        time.Duration `envconfig:"STOREFRONT_MAINTENANCE_LOCK_TTL" default:"10m"`
	DemoPurgeGrace time.Duration `envconfig:"STOREFRONT_DEMO_PURGE_GRACE" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.IsSQLite() {
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
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
