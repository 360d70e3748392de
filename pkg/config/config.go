package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Tree store drivers.
const (
	TreeStoreRedis    = "redis"
	TreeStorePostgres = "postgres"
	TreeStoreMemory   = "memory"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	TreeStore TreeStoreConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	TOTP      TOTPConfig
	Session   SessionConfig
	Site      SiteConfig
	SEO       SEOConfig
	Analytics AnalyticsConfig
	Metrics   MetricsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TreeStoreConfig selects the backend holding the CMS document tree.
type TreeStoreConfig struct {
	Driver string
	Prefix string
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
	Issuer            string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TOTPConfig tunes the one-time password parameters.
type TOTPConfig struct {
	Issuer     string
	Period     uint
	Skew       uint
	SecretSize uint
	QRSize     int
}

// SessionConfig governs the browser login-session cookie.
type SessionConfig struct {
	CookieName string
	HashKey    string
	BlockKey   string
	IdleTTL    time.Duration
	Secure     bool
	// LoginRateLimit caps sign-in and TOTP requests per IP per minute.
	LoginRateLimit int
}

// SiteConfig carries public site identity used in SEO output.
type SiteConfig struct {
	Name    string
	BaseURL string
}

// SEOConfig governs SEO read caching.
type SEOConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// AnalyticsConfig governs page view tracking.
type AnalyticsConfig struct {
	Enabled        bool
	CountryHeaders []string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.TreeStore = TreeStoreConfig{
		Driver: strings.ToLower(strings.TrimSpace(v.GetString("TREE_STORE_DRIVER"))),
		Prefix: v.GetString("TREE_STORE_PREFIX"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
		Issuer:            v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.TOTP = TOTPConfig{
		Issuer:     v.GetString("TOTP_ISSUER"),
		Period:     v.GetUint("TOTP_PERIOD"),
		Skew:       v.GetUint("TOTP_SKEW"),
		SecretSize: v.GetUint("TOTP_SECRET_SIZE"),
		QRSize:     v.GetInt("TOTP_QR_SIZE"),
	}
	if cfg.TOTP.Period == 0 {
		cfg.TOTP.Period = 30
	}
	// 160 bits is the floor for shared secrets.
	if cfg.TOTP.SecretSize < 20 {
		cfg.TOTP.SecretSize = 20
	}

	cfg.Session = SessionConfig{
		CookieName: v.GetString("SESSION_COOKIE_NAME"),
		HashKey:    v.GetString("SESSION_HASH_KEY"),
		BlockKey:   v.GetString("SESSION_BLOCK_KEY"),
		IdleTTL:    parseDuration(v.GetString("SESSION_IDLE_TTL"), 15*time.Minute),
		Secure:     v.GetBool("SESSION_COOKIE_SECURE"),

		LoginRateLimit: v.GetInt("SESSION_LOGIN_RATE_LIMIT"),
	}

	cfg.Site = SiteConfig{
		Name:    v.GetString("SITE_NAME"),
		BaseURL: strings.TrimRight(v.GetString("SITE_BASE_URL"), "/"),
	}

	cfg.SEO = SEOConfig{
		CacheEnabled: v.GetBool("ENABLE_SEO_CACHE"),
		CacheTTL:     parseDuration(v.GetString("SEO_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Analytics = AnalyticsConfig{
		Enabled:        v.GetBool("ENABLE_ANALYTICS"),
		CountryHeaders: splitAndTrim(v.GetString("ANALYTICS_COUNTRY_HEADERS")),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "verlux")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("TREE_STORE_DRIVER", TreeStoreRedis)
	v.SetDefault("TREE_STORE_PREFIX", "verlux")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")
	v.SetDefault("JWT_ISSUER", "verlux-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TOTP_ISSUER", "Verlux Stands Admin")
	v.SetDefault("TOTP_PERIOD", 30)
	v.SetDefault("TOTP_SKEW", 2)
	v.SetDefault("TOTP_SECRET_SIZE", 20)
	v.SetDefault("TOTP_QR_SIZE", 200)

	v.SetDefault("SESSION_COOKIE_NAME", "verlux_login")
	v.SetDefault("SESSION_HASH_KEY", "dev_session_hash_key_change_me_32b")
	v.SetDefault("SESSION_BLOCK_KEY", "")
	v.SetDefault("SESSION_IDLE_TTL", "15m")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_LOGIN_RATE_LIMIT", 20)

	v.SetDefault("SITE_NAME", "Verlux Stands")
	v.SetDefault("SITE_BASE_URL", "https://verluxstands.com")

	v.SetDefault("ENABLE_SEO_CACHE", true)
	v.SetDefault("SEO_CACHE_TTL", "5m")

	v.SetDefault("ENABLE_ANALYTICS", true)
	v.SetDefault("ANALYTICS_COUNTRY_HEADERS", "X-Vercel-IP-Country,CF-IPCountry")

	v.SetDefault("ENABLE_METRICS", true)
}

func isMissingFile(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
