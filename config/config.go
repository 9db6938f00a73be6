package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	Log            LogConfig            `mapstructure:"log"`
	Wallet         WalletConfig         `mapstructure:"wallet"`
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation"`
	Providers      ProvidersConfig      `mapstructure:"providers"`
	Services       ServicesConfig       `mapstructure:"services"`
	Mock           MockConfig           `mapstructure:"mock"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LockTimeout     time.Duration `mapstructure:"lock_timeout"` // bounds SELECT ... FOR UPDATE waits
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig configures validation of identity tokens issued by the auth service.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type WalletConfig struct {
	// Amount in minor units at or above which a LARGE_TRANSACTION notification is sent.
	LargeTransactionThreshold int64 `mapstructure:"large_transaction_threshold"`
}

type ReconciliationConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Schedule  string `mapstructure:"schedule"` // six-field cron expression, UTC
	BatchSize int    `mapstructure:"batch_size"`
}

type ProvidersConfig struct {
	Timeout     time.Duration       `mapstructure:"timeout"`
	Preferences map[string][]string `mapstructure:"preferences"`
	Payme       PaymeConfig         `mapstructure:"payme"`
	Click       ClickConfig         `mapstructure:"click"`
	Stripe      StripeConfig        `mapstructure:"stripe"`
}

// PreferenceOrder returns the preferences keyed by upper-case currency code.
// Viper lower-cases map keys when reading, so callers must not rely on the raw map.
func (p ProvidersConfig) PreferenceOrder() map[string][]string {
	out := make(map[string][]string, len(p.Preferences))
	for cur, names := range p.Preferences {
		upper := make([]string, 0, len(names))
		for _, n := range names {
			upper = append(upper, strings.ToUpper(strings.TrimSpace(n)))
		}
		out[strings.ToUpper(cur)] = upper
	}
	return out
}

type PaymeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type ClickConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type StripeConfig struct {
	WebhookSecret    string        `mapstructure:"webhook_secret"`
	WebhookTolerance time.Duration `mapstructure:"webhook_tolerance"`
}

type ServicesConfig struct {
	Ledger       CollaboratorConfig `mapstructure:"ledger"`
	Notification CollaboratorConfig `mapstructure:"notification"`
}

// CollaboratorConfig describes a downstream HTTP service called after commit.
type CollaboratorConfig struct {
	URL           string        `mapstructure:"url"`
	Enabled       bool          `mapstructure:"enabled"`
	Timeout       time.Duration `mapstructure:"timeout"`
	SigningSecret string        `mapstructure:"signing_secret"`
}

type MockConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var supportedCurrencies = map[string]bool{"USD": true, "EUR": true, "UZS": true}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("database.port must be positive, got %d", c.Database.Port)
	}
	if c.Redis.Port <= 0 {
		return fmt.Errorf("redis.port must be positive, got %d", c.Redis.Port)
	}
	if c.Reconciliation.BatchSize <= 0 {
		return errors.New("reconciliation.batch_size must be positive")
	}
	for cur, names := range c.Providers.PreferenceOrder() {
		if !supportedCurrencies[cur] {
			return fmt.Errorf("providers.preferences: unsupported currency %q", cur)
		}
		if len(names) == 0 {
			return fmt.Errorf("providers.preferences.%s: at least one provider required", cur)
		}
	}
	return nil
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WLT_.
// Nested keys use underscore: WLT_DATABASE_HOST, WLT_SERVICES_LEDGER_URL, etc.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallet_engine")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.lock_timeout", "5s")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "wallet-auth")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("wallet.large_transaction_threshold", 100000)
	v.SetDefault("reconciliation.enabled", true)
	v.SetDefault("reconciliation.schedule", "0 0 2 * * *")
	v.SetDefault("reconciliation.batch_size", 500)
	v.SetDefault("providers.timeout", "10s")
	v.SetDefault("providers.preferences", map[string][]string{
		"UZS": {"PAYME", "CLICK"},
		"USD": {"STRIPE"},
		"EUR": {"STRIPE"},
	})
	v.SetDefault("providers.payme.secret_key", "")
	v.SetDefault("providers.click.secret_key", "")
	v.SetDefault("providers.stripe.webhook_secret", "")
	v.SetDefault("providers.stripe.webhook_tolerance", "5m")
	v.SetDefault("services.ledger.url", "http://localhost:8083")
	v.SetDefault("services.ledger.enabled", true)
	v.SetDefault("services.ledger.timeout", "5s")
	v.SetDefault("services.ledger.signing_secret", "")
	v.SetDefault("services.notification.url", "http://localhost:8084")
	v.SetDefault("services.notification.enabled", true)
	v.SetDefault("services.notification.timeout", "3s")
	v.SetDefault("services.notification.signing_secret", "")
	v.SetDefault("mock.enabled", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WLT_DATABASE_HOST -> database.host
	v.SetEnvPrefix("WLT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
