package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvLogLevel     = "STOREFRONT_LOG_LEVEL"
	EnvLogWarnStack = "STOREFRONT_LOG_WARN_STACK"
	EnvCORSOrigins  = "STOREFRONT_CORS_ALLOWED_ORIGINS"

	EnvDBDSN      = "STOREFRONT_DB_DSN"
	EnvDBDriver   = "STOREFRONT_DB_DRIVER"
	EnvDBHost     = "STOREFRONT_DB_HOST"
	EnvDBPort     = "STOREFRONT_DB_PORT"
	EnvDBUser     = "STOREFRONT_DB_USER"
	EnvDBPassword = "STOREFRONT_DB_PASSWORD"
	EnvDBName     = "STOREFRONT_DB_NAME"
	EnvDBSSLMode  = "STOREFRONT_DB_SSLMODE"
	EnvSQLitePath = "STOREFRONT_SQLITE_PATH"

	EnvRedisURL = "STOREFRONT_REDIS_URL"

	EnvAuthSecret   = "STOREFRONT_AUTH_JWT_SECRET"
	EnvAuthIssuer   = "STOREFRONT_AUTH_JWT_ISSUER"
	EnvAuthAudience = "STOREFRONT_AUTH_JWT_AUDIENCE"

	EnvWhatsAppPhoneNumberID = "STOREFRONT_WHATSAPP_PHONE_NUMBER_ID"
	EnvWhatsAppAccessToken   = "STOREFRONT_WHATSAPP_ACCESS_TOKEN"
	EnvWhatsAppBaseURL       = "STOREFRONT_WHATSAPP_BASE_URL"
	EnvWhatsAppTimeout       = "STOREFRONT_WHATSAPP_TIMEOUT"

	EnvCheckoutOrderAPIURL = "STOREFRONT_CHECKOUT_ORDER_API_URL"
	EnvCheckoutInFlightTTL = "STOREFRONT_CHECKOUT_IN_FLIGHT_TTL"

	EnvCartSessionTTL = "STOREFRONT_CART_SESSION_TTL"
	EnvCartStorageKey = "STOREFRONT_CART_STORAGE_KEY"
	EnvCartLockTTL    = "STOREFRONT_CART_LOCK_TTL"
	EnvCartLockWait   = "STOREFRONT_CART_LOCK_WAIT"

	EnvUseSQLite    = "STOREFRONT_USE_SQLITE"
	EnvAutoMigrate  = "STOREFRONT_AUTO_MIGRATE"
	EnvSeedDemoData = "STOREFRONT_SEED_DEMO_DATA"

	EnvDemoProductTTL = "STOREFRONT_DEMO_PRODUCT_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
